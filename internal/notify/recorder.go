package notify

import (
	"context"
	"fmt"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/models"
)

// Recorder appends audit entries for employee-initiated actions.
// Administrator actions are not audited; callers gate on the actor's
// role before invoking Record.
type Recorder struct {
	activity db.ActivityLogCollection
}

// NewRecorder creates a recorder backed by the given collection.
func NewRecorder(activity db.ActivityLogCollection) *Recorder {
	return &Recorder{activity: activity}
}

// Record appends an activity log entry and returns the persisted record
// so the caller can forward it to the realtime channel without
// re-querying.
func (r *Recorder) Record(ctx context.Context, actorID string, action models.ActionType, description, link string) (*models.ActivityLogEntry, error) {
	entry, err := r.activity.InsertEntry(ctx, models.ActivityLogEntry{
		ActorID:     actorID,
		Action:      action,
		Description: description,
		Link:        link,
	})
	if err != nil {
		return nil, fmt.Errorf("append activity log entry: %w", err)
	}
	return entry, nil
}
