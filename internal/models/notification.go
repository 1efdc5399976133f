package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audience describes the intended recipients of a notification: the set
// of role rooms it targets and an optional module tag recipients can
// filter on. It is captured at creation time and never mutated.
type Audience struct {
	Roles  []Role `bson:"roles" json:"roles"`
	Module string `bson:"module,omitempty" json:"module,omitempty"`
}

// Notification represents a persisted back-office notification. One
// record is materialized per audience role; Role is the recipient room
// and Link the role-specific navigation target.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Role      Role               `bson:"role" json:"role"`
	Audience  Audience           `bson:"audience" json:"audience"`
	Message   string             `bson:"message" json:"message"`
	Link      string             `bson:"link" json:"link"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
