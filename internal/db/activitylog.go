package db

import (
	"context"
	"time"

	"github.com/ukydev/car-rental-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityLogCollection defines the interface for activity log database
// operations. The log is append-only; entries are never updated or deleted.
type ActivityLogCollection interface {
	InsertEntry(ctx context.Context, entry models.ActivityLogEntry) (*models.ActivityLogEntry, error)
	FindRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error)
}

// MongoActivityLogCollection implements ActivityLogCollection for MongoDB
type MongoActivityLogCollection struct {
	Collection *mongo.Collection
}

// InsertEntry appends an activity log entry and returns it with its assigned id.
func (c *MongoActivityLogCollection) InsertEntry(ctx context.Context, entry models.ActivityLogEntry) (*models.ActivityLogEntry, error) {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()

	if _, err := c.Collection.InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindRecent returns the most recent entries, newest first.
func (c *MongoActivityLogCollection) FindRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(int64(limit))
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.ActivityLogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
