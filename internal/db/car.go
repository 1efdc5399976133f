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

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// CarFilter narrows a car listing query. Zero values mean "no filter".
type CarFilter struct {
	Archived    bool
	Brand       string
	Location    string
	IsAvailable *bool
	MinPrice    *float64
	MaxPrice    *float64
}

// CarCollection defines the interface for car database operations
type CarCollection interface {
	InsertCar(ctx context.Context, car models.Car) (*models.Car, error)
	FindCars(ctx context.Context, filter CarFilter, page, limit int) ([]models.Car, int64, error)
	FindCarByID(ctx context.Context, id string) (*models.Car, error)
	UpdateCar(ctx context.Context, id string, car models.Car) (*models.Car, error)
	SetArchived(ctx context.Context, id string, archived bool) (*models.Car, error)
}

// MongoCarCollection implements CarCollection for MongoDB
type MongoCarCollection struct {
	Collection *mongo.Collection
}

func (f CarFilter) query() bson.M {
	query := bson.M{"archived": f.Archived}
	if f.Brand != "" {
		query["brand"] = primitive.Regex{Pattern: f.Brand, Options: "i"}
	}
	if f.Location != "" {
		query["location"] = primitive.Regex{Pattern: f.Location, Options: "i"}
	}
	if f.IsAvailable != nil {
		query["is_available"] = *f.IsAvailable
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price_per_day"] = price
	}
	return query
}

// InsertCar inserts a car and returns it with its assigned id.
func (c *MongoCarCollection) InsertCar(ctx context.Context, car models.Car) (*models.Car, error) {
	car.ID = primitive.NewObjectID()
	car.CreatedAt = time.Now()
	car.UpdatedAt = time.Now()

	if _, err := c.Collection.InsertOne(ctx, car); err != nil {
		return nil, err
	}
	return &car, nil
}

// FindCars returns one page of cars matching the filter, newest first,
// along with the total match count for pagination.
func (c *MongoCarCollection) FindCars(ctx context.Context, filter CarFilter, page, limit int) ([]models.Car, int64, error) {
	query := filter.query()

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := c.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	cars := []models.Car{}
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

// FindCarByID finds a car by its ID.
func (c *MongoCarCollection) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var car models.Car
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &car, nil
}

// UpdateCar replaces a car's mutable fields and returns the updated document.
func (c *MongoCarCollection) UpdateCar(ctx context.Context, id string, car models.Car) (*models.Car, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"brand":         car.Brand,
		"model":         car.Model,
		"year":          car.Year,
		"price_per_day": car.PricePerDay,
		"location":      car.Location,
		"image_url":     car.ImageURL,
		"is_available":  car.IsAvailable,
		"updated_at":    time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Car
	err = c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// SetArchived archives or restores a car. Archiving also takes the car
// off the available list; restoring puts it back.
func (c *MongoCarCollection) SetArchived(ctx context.Context, id string, archived bool) (*models.Car, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"archived":     archived,
		"is_available": !archived,
		"updated_at":   time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Car
	err = c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}
