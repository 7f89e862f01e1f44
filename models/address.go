package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Address struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId"`
	Title        string             `json:"title" bson:"title"`
	Street       string             `json:"street" bson:"street"`
	City         string             `json:"city" bson:"city"`
	State        string             `json:"state" bson:"state"`
	Country      string             `json:"country" bson:"country"`
	ZipCode      string             `json:"zipCode" bson:"zipCode"`
	MobileNumber string             `json:"mobileNumber" bson:"mobileNumber"`
}

// AddressView is the subset of address fields the order detail pipeline
// projects into the response.
type AddressView struct {
	Title        string `json:"title,omitempty" bson:"title,omitempty"`
	Street       string `json:"street,omitempty" bson:"street,omitempty"`
	City         string `json:"city,omitempty" bson:"city,omitempty"`
	State        string `json:"state,omitempty" bson:"state,omitempty"`
	Country      string `json:"country,omitempty" bson:"country,omitempty"`
	ZipCode      string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty" bson:"mobileNumber,omitempty"`
}
