package db

import (
	"context"
	"errors"
	"time"

	"github.com/ukydev/car-rental-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FAQCollection defines the interface for FAQ database operations
type FAQCollection interface {
	InsertFAQ(ctx context.Context, faq models.FAQ) (*models.FAQ, error)
	FindFAQs(ctx context.Context, activeOnly bool) ([]models.FAQ, error)
	UpdateFAQ(ctx context.Context, id string, faq models.FAQ) (*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id string) error
}

// MongoFAQCollection implements FAQCollection for MongoDB
type MongoFAQCollection struct {
	Collection *mongo.Collection
}

// InsertFAQ inserts an FAQ and returns it with its assigned id.
func (c *MongoFAQCollection) InsertFAQ(ctx context.Context, faq models.FAQ) (*models.FAQ, error) {
	faq.ID = primitive.NewObjectID()
	faq.CreatedAt = time.Now()
	faq.UpdatedAt = time.Now()

	if _, err := c.Collection.InsertOne(ctx, faq); err != nil {
		return nil, err
	}
	return &faq, nil
}

// FindFAQs returns FAQs in display order, optionally only active ones.
func (c *MongoFAQCollection) FindFAQs(ctx context.Context, activeOnly bool) ([]models.FAQ, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	faqs := []models.FAQ{}
	if err := cursor.All(ctx, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

// UpdateFAQ replaces an FAQ's fields and returns the updated document.
func (c *MongoFAQCollection) UpdateFAQ(ctx context.Context, id string, faq models.FAQ) (*models.FAQ, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"question":   faq.Question,
		"answer":     faq.Answer,
		"is_active":  faq.IsActive,
		"order":      faq.Order,
		"updated_at": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.FAQ
	err = c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteFAQ deletes an FAQ by its ID.
func (c *MongoFAQCollection) DeleteFAQ(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
