// Package notify persists the secondary effects of back-office
// mutations: per-role notifications and the employee audit trail. Both
// run after the primary write has committed; their failures are reported
// to the caller to log, never to roll anything back.
package notify

import (
	"context"
	"fmt"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/models"
)

// Dispatcher materializes notifications for an audience.
type Dispatcher struct {
	notifications db.NotificationCollection
}

// NewDispatcher creates a dispatcher backed by the given collection.
func NewDispatcher(notifications db.NotificationCollection) *Dispatcher {
	return &Dispatcher{notifications: notifications}
}

// Dispatch creates one notification per audience role, taking each
// role's link from linksByRole. Every audience role must have a link
// entry; a missing entry is a caller contract violation and fails the
// whole dispatch. Dispatch is not idempotent — callers invoke it at most
// once per logical event.
func (d *Dispatcher) Dispatch(ctx context.Context, audience models.Audience, message string, linksByRole map[models.Role]string) ([]models.Notification, error) {
	for _, role := range audience.Roles {
		if _, ok := linksByRole[role]; !ok {
			return nil, fmt.Errorf("no link provided for role %q", role)
		}
	}

	created := make([]models.Notification, 0, len(audience.Roles))
	for _, role := range audience.Roles {
		notification, err := d.notifications.InsertNotification(ctx, models.Notification{
			Role:     role,
			Audience: audience,
			Message:  message,
			Link:     linksByRole[role],
		})
		if err != nil {
			return created, fmt.Errorf("insert notification for role %q: %w", role, err)
		}
		created = append(created, *notification)
	}
	return created, nil
}
