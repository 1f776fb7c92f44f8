package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hydrate-app/hydrate/internal/models"
)

// MongoStore keeps the per-user activity log in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("activity")}
}

// EnsureIndexes creates the (user_id, created_at) index used by ListByUser.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo index: %w", err)
	}
	return nil
}

func (s *MongoStore) Record(ctx context.Context, a models.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if _, err := s.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

// ListByUser returns the newest limit events for userID.
func (s *MongoStore) ListByUser(ctx context.Context, userID int64, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	var events []models.Activity
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return events, nil
}
