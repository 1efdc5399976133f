package models

import (
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentTypes lists the static content documents the site serves.
var ContentTypes = []string{
	"mission", "vision", "about", "terms", "privacy", "contact",
	"bookingTerms", "paymentQR",
}

// Content is a single static content document, keyed by type.
type Content struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsValidContentType reports whether the type is one of the known
// content documents.
func IsValidContentType(t string) bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// DefaultContentTitle derives a display title from a content type:
// "bookingTerms" becomes "Booking Terms".
func DefaultContentTitle(t string) string {
	if t == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range t {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
