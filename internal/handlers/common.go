package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ukydev/car-rental-backoffice/internal/models"
)

// ActivityRecorder appends audit entries for employee-tier actions.
type ActivityRecorder interface {
	Record(ctx context.Context, actorID string, action models.ActionType, description, link string) (*models.ActivityLogEntry, error)
}

// NotificationDispatcher materializes notifications for an audience.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, audience models.Audience, message string, linksByRole map[models.Role]string) ([]models.Notification, error)
}

// Navigation targets baked into notification and audit records.
const (
	linkManageCars       = "/owner/manage-cars"
	linkManageCarsStaff  = "/employee/manage-cars"
	linkManagePromotions = "/owner/manage-promotions"
	linkContentEditor    = "/owner/content-management"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, map[string]interface{}{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "message": message})
}
