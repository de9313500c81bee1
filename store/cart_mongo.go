package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-shopcart/models"
)

// MongoCartStore implements CartStore on a "carts" collection.
type MongoCartStore struct {
	collection *mongo.Collection
}

// NewMongoCartStore creates a MongoCartStore.
func NewMongoCartStore(db *mongo.Database) *MongoCartStore {
	return &MongoCartStore{collection: db.Collection("carts")}
}

func (s *MongoCartStore) FindByEmail(ctx context.Context, email string) (models.Cart, error) {
	var cart models.Cart
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cart{}, ErrNoCart
	}
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (s *MongoCartStore) Create(ctx context.Context, email string) (models.Cart, error) {
	now := time.Now().UTC()
	cart := models.Cart{
		Email:     email,
		CartItems: []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := s.collection.InsertOne(ctx, cart)
	if err != nil {
		return models.Cart{}, err
	}
	cart.ID = result.InsertedID.(primitive.ObjectID)
	return cart, nil
}

// Save replaces the whole cart document. The read-modify-write sequence
// around it is not guarded against concurrent writers; only the replace
// itself is atomic.
func (s *MongoCartStore) Save(ctx context.Context, cart models.Cart) (models.Cart, error) {
	cart.UpdatedAt = time.Now().UTC()
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart)
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (s *MongoCartStore) ReplaceByID(ctx context.Context, id primitive.ObjectID, cart models.Cart) (models.Cart, error) {
	cart.ID = id
	return s.Save(ctx, cart)
}
