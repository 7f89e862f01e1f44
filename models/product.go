package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Brand           string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Description     []string           `json:"description,omitempty" bson:"description,omitempty"`
	Feature         []string           `json:"feature,omitempty" bson:"feature,omitempty"`
	Price           float64            `json:"price" bson:"price"`
	MRP             float64            `json:"MRP,omitempty" bson:"MRP,omitempty"`
	Quantity        int                `json:"quantity" bson:"quantity"`
	Category        []string           `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL        []string           `json:"imageURL,omitempty" bson:"imageURL,omitempty"`
	ImageURLHighRes []string           `json:"imageURLHighRes,omitempty" bson:"imageURLHighRes,omitempty"`
	Active          bool               `json:"active" bson:"active"`
	CreatedAt       time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ProductCard is the projected shape returned by search, featured and
// best-selling pipelines: one image, one category tag, review aggregates.
type ProductCard struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Title        string             `json:"title" bson:"title"`
	Brand        string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Price        float64            `json:"price" bson:"price"`
	MRP          float64            `json:"MRP,omitempty" bson:"MRP,omitempty"`
	ImageURL     string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Category     string             `json:"category,omitempty" bson:"category,omitempty"`
	Rating       *float64           `json:"rating" bson:"rating"`
	TotalReviews *int               `json:"totalReviews,omitempty" bson:"totalReviews,omitempty"`
}

// ProductDetail is the single-product projection with review aggregates.
type ProductDetail struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	Title           string             `json:"title" bson:"title"`
	Brand           string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Description     []string           `json:"description,omitempty" bson:"description,omitempty"`
	Feature         []string           `json:"feature,omitempty" bson:"feature,omitempty"`
	Price           float64            `json:"price" bson:"price"`
	MRP             float64            `json:"MRP,omitempty" bson:"MRP,omitempty"`
	Quantity        int                `json:"quantity" bson:"quantity"`
	Category        []string           `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL        []string           `json:"imageURL,omitempty" bson:"imageURL,omitempty"`
	ImageURLHighRes []string           `json:"imageURLHighRes,omitempty" bson:"imageURLHighRes,omitempty"`
	Rating          *float64           `json:"rating" bson:"rating"`
	TotalReviews    int                `json:"totalReviews" bson:"totalReviews"`
}
