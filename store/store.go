// Package store holds the persistence interfaces consumed by the service
// layer and their MongoDB implementations. Services depend on the
// interfaces only, so tests substitute in-memory fakes.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shopcart/models"
)

// Sentinel errors for absent documents. Callers branch on these with
// errors.Is; anything else is a persistence failure.
var (
	ErrNoCart    = errors.New("cart not found")
	ErrNoProduct = errors.New("product not found")
	ErrNoUser    = errors.New("user not found")
)

// CartStore persists one cart document per user, keyed by email.
type CartStore interface {
	FindByEmail(ctx context.Context, email string) (models.Cart, error)
	Create(ctx context.Context, email string) (models.Cart, error)
	Save(ctx context.Context, cart models.Cart) (models.Cart, error)
	ReplaceByID(ctx context.Context, id primitive.ObjectID, cart models.Cart) (models.Cart, error)
}

// ProductStore is read-only catalog access.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
}

// UserStore persists user accounts.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	SetAddress(ctx context.Context, id primitive.ObjectID, address string) error
	SetWalletMoney(ctx context.Context, id primitive.ObjectID, amount float64) error
}
