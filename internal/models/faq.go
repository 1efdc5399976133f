package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FAQ is a question/answer pair shown on the public site when active.
type FAQ struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer" json:"answer"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
