package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions are one-directional until cancellation.
const (
	OrderStatusPlaced    = "Placed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// LineItem is a product snapshot taken at order creation. Price, quantity
// and subTotal are frozen; display fields are joined at read time.
type LineItem struct {
	ProductID primitive.ObjectID `json:"id" bson:"id"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	SubTotal  float64            `json:"subTotal" bson:"subTotal"`
}

type Order struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderID       string             `json:"orderId" bson:"orderId"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	AddressID     primitive.ObjectID `json:"addressId,omitempty" bson:"addressId,omitempty"`
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`
	PaymentID     string             `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	Title         string             `json:"title,omitempty" bson:"title,omitempty"`
	Products      []LineItem         `json:"products" bson:"products"`
	TotalAmount   float64            `json:"totalAmount" bson:"totalAmount"`
	Status        string             `json:"status" bson:"status"`
	OrderDate     time.Time          `json:"orderDate" bson:"orderDate"`
	DeliveredDate *time.Time         `json:"deliveredDate,omitempty" bson:"deliveredDate,omitempty"`
}

// OrderLineView is a line item joined with current product data for display.
// Title and image reflect the product document as it is now, not the
// snapshot taken at order time.
type OrderLineView struct {
	ProductID primitive.ObjectID `json:"id" bson:"id"`
	ImageURL  string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	SubTotal  float64            `json:"subTotal,omitempty" bson:"subTotal,omitempty"`
}

// OrderView is the joined order shape returned by the detail and listing
// pipelines. Address is only populated on the detail view.
type OrderView struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	OrderID       string             `json:"orderId" bson:"orderId"`
	OrderDate     time.Time          `json:"orderDate" bson:"orderDate"`
	TotalAmount   float64            `json:"totalAmount" bson:"totalAmount"`
	Status        string             `json:"status" bson:"status"`
	PaymentMethod string             `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentID     string             `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	DeliveredDate *time.Time         `json:"deliveredDate,omitempty" bson:"deliveredDate,omitempty"`
	Products      []OrderLineView    `json:"products" bson:"products"`
	TotalItems    int                `json:"totalItems" bson:"totalItems"`
	Address       *AddressView       `json:"address,omitempty" bson:"address,omitempty"`
}
