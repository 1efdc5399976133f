package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActionType identifies the kind of action recorded in the activity log.
type ActionType string

const (
	ActionCreateCar     ActionType = "CREATE_CAR"
	ActionUpdateCar     ActionType = "UPDATE_CAR"
	ActionArchiveCar    ActionType = "ARCHIVE_CAR"
	ActionUpdateContent ActionType = "UPDATE_CONTENT"
)

// ActivityLogEntry is an append-only audit record for an
// employee-initiated back-office action.
type ActivityLogEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID     string             `bson:"actor_id" json:"actorId"`
	Action      ActionType         `bson:"action" json:"action"`
	Description string             `bson:"description" json:"description"`
	Link        string             `bson:"link" json:"link"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
