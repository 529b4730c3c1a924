package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crossroads/apparel-backend/internal/models"
)

// MongoStore records notification delivery attempts in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("deliveries")}
}

// RecordDelivery inserts one delivery attempt. CreatedAt is set if zero.
func (s *MongoStore) RecordDelivery(ctx context.Context, d *models.Delivery) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if _, err := s.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("mongo insert delivery: %w", err)
	}
	return nil
}
