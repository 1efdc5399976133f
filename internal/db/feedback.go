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

// FeedbackCollection defines the interface for feedback database operations
type FeedbackCollection interface {
	InsertFeedback(ctx context.Context, feedback models.Feedback) (*models.Feedback, error)
	FindApproved(ctx context.Context) ([]models.Feedback, error)
	FindAll(ctx context.Context) ([]models.Feedback, error)
	FindByUser(ctx context.Context, userID string) ([]models.Feedback, error)
	SetApproved(ctx context.Context, id string) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
}

// MongoFeedbackCollection implements FeedbackCollection for MongoDB
type MongoFeedbackCollection struct {
	Collection *mongo.Collection
}

// InsertFeedback inserts a feedback entry and returns it with its assigned id.
func (c *MongoFeedbackCollection) InsertFeedback(ctx context.Context, feedback models.Feedback) (*models.Feedback, error) {
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = time.Now()

	if _, err := c.Collection.InsertOne(ctx, feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (c *MongoFeedbackCollection) find(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedback := []models.Feedback{}
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// FindApproved returns approved feedback, newest first.
func (c *MongoFeedbackCollection) FindApproved(ctx context.Context) ([]models.Feedback, error) {
	return c.find(ctx, bson.M{"approved": true})
}

// FindAll returns every feedback entry, approved or pending, newest first.
func (c *MongoFeedbackCollection) FindAll(ctx context.Context) ([]models.Feedback, error) {
	return c.find(ctx, bson.M{})
}

// FindByUser returns a user's own feedback, newest first.
func (c *MongoFeedbackCollection) FindByUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	return c.find(ctx, bson.M{"user_id": userID})
}

// SetApproved marks a feedback entry approved and returns the updated document.
func (c *MongoFeedbackCollection) SetApproved(ctx context.Context, id string) (*models.Feedback, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"approved":   true,
		"updated_at": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Feedback
	err = c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteFeedback deletes a feedback entry by its ID.
func (c *MongoFeedbackCollection) DeleteFeedback(ctx context.Context, id string) error {
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
