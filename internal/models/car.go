package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Car represents a rental car listing.
type Car struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Brand       string             `bson:"brand" json:"brand"`
	Model       string             `bson:"model" json:"model"`
	Year        int                `bson:"year" json:"year"`
	PricePerDay float64            `bson:"price_per_day" json:"pricePerDay"`
	Location    string             `bson:"location" json:"location"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	IsAvailable bool               `bson:"is_available" json:"isAvailable"`
	Archived    bool               `bson:"archived" json:"archived"`
	OwnerID     string             `bson:"owner_id" json:"ownerId"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// PricedCar is a car annotated with its promotion-adjusted price for
// listing responses. PricePerDay carries the resolved price and
// OriginalPrice the base price from the document.
type PricedCar struct {
	Car
	OriginalPrice      float64 `json:"originalPrice"`
	AppliedPromotionID string  `json:"appliedPromotionId,omitempty"`
}
