package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery statuses recorded for each notification attempt.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// Delivery is a single outbound notification attempt stored in MongoDB.
type Delivery struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Kind      string             `json:"kind"       bson:"kind"`
	To        string             `json:"to"         bson:"to"`
	Status    string             `json:"status"     bson:"status"`
	Error     string             `json:"error"      bson:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
