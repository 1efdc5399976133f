// Package pricing resolves the effective rental price of a car against
// the set of currently effective promotions.
package pricing

import (
	"github.com/ukydev/car-rental-backoffice/internal/models"
)

// EffectivePrice is the outcome of a single pricing pass. It is derived
// per read and never persisted.
type EffectivePrice struct {
	OriginalPrice      float64 `json:"originalPrice"`
	ResolvedPrice      float64 `json:"resolvedPrice"`
	AppliedPromotionID string  `json:"appliedPromotionId,omitempty"`
}

// Resolve computes the best price for a car from the given promotions.
// Only promotions whose scope covers the car are considered; among those
// the lowest candidate price wins and exactly one discount applies (no
// stacking). With competing equal candidates the price is deterministic
// but the recorded promotion id is whichever candidate was seen first.
//
// Candidate prices are not floored at zero: a fixed discount larger than
// the base price, or a percentage above 100, yields a negative resolved
// price.
//
// Resolve is pure; it is safe to call concurrently.
func Resolve(car *models.Car, promotions []models.Promotion) EffectivePrice {
	result := EffectivePrice{
		OriginalPrice: car.PricePerDay,
		ResolvedPrice: car.PricePerDay,
	}

	carID := car.ID.Hex()
	for i := range promotions {
		promo := &promotions[i]
		if !promo.AppliesTo(carID) {
			continue
		}

		var candidate float64
		switch promo.DiscountType {
		case models.DiscountPercentage:
			candidate = result.OriginalPrice - result.OriginalPrice*(float64(promo.DiscountValue)/100)
		case models.DiscountFixed:
			candidate = result.OriginalPrice - float64(promo.DiscountValue)
		default:
			continue
		}

		if candidate < result.ResolvedPrice {
			result.ResolvedPrice = candidate
			result.AppliedPromotionID = promo.ID.Hex()
		}
	}

	return result
}
