package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem pairs a product snapshot with a quantity. The snapshot is taken
// when the item is added (or updated) and is what checkout charges against,
// even if the catalog price changes afterwards.
type CartItem struct {
	Product  Product `bson:"product" json:"product"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Cart is a user's shopping cart, one document per user keyed by email.
// An empty CartItems slice is a valid persisted state and is distinct from
// the cart document not existing at all.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	CartItems []CartItem         `bson:"cart_items" json:"cartItems"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
