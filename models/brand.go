package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand titles are unique (enforced by an index on the collection).
type Brand struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title" binding:"required"`
	FeaturedImage string             `json:"featuredImage" bson:"featuredImage" binding:"required"`
	Active        bool               `json:"active" bson:"active"`
	CreatedAt     time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt     time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
