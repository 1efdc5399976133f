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

// PromotionCollection defines the interface for promotion database
// operations. FindEffective is the promotion catalog contract used by
// every pricing pass: it must be queried fresh per request, never cached.
type PromotionCollection interface {
	InsertPromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error)
	FindEffective(ctx context.Context, now time.Time) ([]models.Promotion, error)
	FindAll(ctx context.Context) ([]models.Promotion, error)
	UpdatePromotion(ctx context.Context, id string, promotion models.Promotion) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id string) error
}

// MongoPromotionCollection implements PromotionCollection for MongoDB
type MongoPromotionCollection struct {
	Collection *mongo.Collection
}

// InsertPromotion inserts a promotion and returns it with its assigned id.
func (c *MongoPromotionCollection) InsertPromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error) {
	promotion.ID = primitive.NewObjectID()
	promotion.CreatedAt = time.Now()
	promotion.UpdatedAt = time.Now()

	if _, err := c.Collection.InsertOne(ctx, promotion); err != nil {
		return nil, err
	}
	return &promotion, nil
}

// FindEffective returns promotions that are active and whose inclusive
// [start_date, end_date] window contains now, newest first so the public
// listing orders like the admin one. Pricing ignores the order.
func (c *MongoPromotionCollection) FindEffective(ctx context.Context, now time.Time) ([]models.Promotion, error) {
	filter := bson.M{
		"is_active":  true,
		"start_date": bson.M{"$lte": now},
		"end_date":   bson.M{"$gte": now},
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	promotions := []models.Promotion{}
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

// FindAll returns every promotion regardless of effectiveness, newest first.
func (c *MongoPromotionCollection) FindAll(ctx context.Context) ([]models.Promotion, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	promotions := []models.Promotion{}
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

// UpdatePromotion replaces a promotion's fields and returns the updated document.
func (c *MongoPromotionCollection) UpdatePromotion(ctx context.Context, id string, promotion models.Promotion) (*models.Promotion, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":          promotion.Title,
		"description":    promotion.Description,
		"discount_type":  promotion.DiscountType,
		"discount_value": promotion.DiscountValue,
		"applicable_to":  promotion.ApplicableTo,
		"item_ids":       promotion.ItemIDs,
		"start_date":     promotion.StartDate,
		"end_date":       promotion.EndDate,
		"is_active":      promotion.IsActive,
		"updated_at":     time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Promotion
	err = c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeletePromotion deletes a promotion by its ID.
func (c *MongoPromotionCollection) DeletePromotion(ctx context.Context, id string) error {
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
