package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"id" bson:"id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

// Cart is a pending, mutable collection of product+quantity pairs for one
// user. It is deleted when converted to an order.
type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Products  []CartItem         `json:"products" bson:"products"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// CartTotals is the result of the cart-totals aggregation: the snapshot an
// order is created from.
type CartTotals struct {
	TotalAmount float64    `json:"totalAmount" bson:"totalAmount"`
	Products    []LineItem `json:"products" bson:"products"`
}
