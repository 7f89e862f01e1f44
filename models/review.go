package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review field names match the stored documents (capitalised ProductID and
// Rating), which the aggregation pipelines reference by name.
type Review struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"ProductID" bson:"ProductID"`
	UserID    primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Rating    float64            `json:"Rating" bson:"Rating"`
	Text      string             `json:"text,omitempty" bson:"text,omitempty"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
