package handlers

import (
	"errors"
	"net/http"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/middleware"
)

// NotificationsHandler serves a role's notification inbox.
type NotificationsHandler struct {
	notifications db.NotificationCollection
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(notifications db.NotificationCollection) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List handles GET /api/notifications: the authenticated role's records,
// newest first.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	notifications, err := h.notifications.FindByRole(r.Context(), claims.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, notifications)
}

// MarkRead handles PATCH /api/notifications/{id}/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.notifications.MarkRead(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Notification not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Notification marked as read",
	})
}
