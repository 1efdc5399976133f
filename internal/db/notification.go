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

// NotificationCollection defines the interface for notification database operations
type NotificationCollection interface {
	InsertNotification(ctx context.Context, notification models.Notification) (*models.Notification, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// MongoNotificationCollection implements NotificationCollection for MongoDB
type MongoNotificationCollection struct {
	Collection *mongo.Collection
}

// InsertNotification inserts a notification and returns it with its assigned id.
func (c *MongoNotificationCollection) InsertNotification(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()

	if _, err := c.Collection.InsertOne(ctx, notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// FindByRole returns a role's notifications, newest first.
func (c *MongoNotificationCollection) FindByRole(ctx context.Context, role models.Role) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags a notification as read.
func (c *MongoNotificationCollection) MarkRead(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
