package db

import (
	"context"
	"errors"
	"time"

	"github.com/ukydev/car-rental-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentCollection defines the interface for static content database
// operations. The read path deliberately exposes get-or-create as a
// single operation at the persistence boundary rather than hiding the
// first-read write inside a generic find.
type ContentCollection interface {
	GetOrCreateDefault(ctx context.Context, contentType string) (*models.Content, error)
	Upsert(ctx context.Context, contentType, title, body string) (*models.Content, error)
	DistinctTypes(ctx context.Context) ([]string, error)
}

// MongoContentCollection implements ContentCollection for MongoDB
type MongoContentCollection struct {
	Collection *mongo.Collection
}

// GetOrCreateDefault returns the content document for a type, creating a
// default-titled empty document on first read.
func (c *MongoContentCollection) GetOrCreateDefault(ctx context.Context, contentType string) (*models.Content, error) {
	update := bson.M{
		"$setOnInsert": bson.M{
			"type":       contentType,
			"title":      models.DefaultContentTitle(contentType),
			"content":    "",
			"created_at": time.Now(),
			"updated_at": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var content models.Content
	err := c.Collection.FindOneAndUpdate(ctx, bson.M{"type": contentType}, update, opts).Decode(&content)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Upsert updates the content document for a type, creating it if absent.
func (c *MongoContentCollection) Upsert(ctx context.Context, contentType, title, body string) (*models.Content, error) {
	update := bson.M{
		"$set": bson.M{
			"title":      title,
			"content":    body,
			"updated_at": time.Now(),
		},
		"$setOnInsert": bson.M{
			"type":       contentType,
			"created_at": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var content models.Content
	err := c.Collection.FindOneAndUpdate(ctx, bson.M{"type": contentType}, update, opts).Decode(&content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

// DistinctTypes returns the content types present in the store.
func (c *MongoContentCollection) DistinctTypes(ctx context.Context) ([]string, error) {
	values, err := c.Collection.Distinct(ctx, "type", bson.M{})
	if err != nil {
		return nil, err
	}

	types := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			types = append(types, s)
		}
	}
	return types, nil
}
