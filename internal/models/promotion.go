package models

import (
	"encoding/json"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountType determines how a promotion's value is applied to a price.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ApplicableTo scopes a promotion to the whole catalog or a set of cars.
type ApplicableTo string

const (
	ApplicableAll ApplicableTo = "all"
	ApplicableCar ApplicableTo = "car"
)

// DiscountValue is a float64 that tolerates sloppy JSON input. The admin
// form submits the raw input field, so the value may arrive as a number,
// a numeric string, an empty string, or null; anything non-numeric
// decodes to 0 rather than failing or producing NaN.
type DiscountValue float64

// UnmarshalJSON implements json.Unmarshaler.
func (d *DiscountValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DiscountValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			*d = DiscountValue(parsed)
			return nil
		}
	}
	*d = 0
	return nil
}

// Promotion represents a discount campaign over the car catalog.
type Promotion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	DiscountType  DiscountType       `bson:"discount_type" json:"discountType"`
	DiscountValue DiscountValue      `bson:"discount_value" json:"discountValue"`
	ApplicableTo  ApplicableTo       `bson:"applicable_to" json:"applicableTo"`
	ItemIDs       []string           `bson:"item_ids,omitempty" json:"itemIds,omitempty"`
	StartDate     time.Time          `bson:"start_date" json:"startDate"`
	EndDate       time.Time          `bson:"end_date" json:"endDate"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsEffective reports whether the promotion applies at the given time:
// active and within the inclusive [StartDate, EndDate] window.
func (p *Promotion) IsEffective(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// AppliesTo reports whether the promotion's scope covers the given car.
func (p *Promotion) AppliesTo(carID string) bool {
	if p.ApplicableTo == ApplicableAll {
		return true
	}
	if p.ApplicableTo == ApplicableCar {
		for _, id := range p.ItemIDs {
			if id == carID {
				return true
			}
		}
	}
	return false
}
