package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is read-only catalog data.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
	Cost     float64            `bson:"cost" json:"cost"`
	Rating   int                `bson:"rating" json:"rating"`
	Image    string             `bson:"image" json:"image"`
}
