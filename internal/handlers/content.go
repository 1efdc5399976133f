package handlers

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/middleware"
	"github.com/ukydev/car-rental-backoffice/internal/models"
	"github.com/ukydev/car-rental-backoffice/internal/realtime"
)

// ContentHandler handles static content requests.
type ContentHandler struct {
	content    db.ContentCollection
	recorder   ActivityRecorder
	dispatcher NotificationDispatcher
	hub        realtime.Broadcaster
}

// NewContentHandler creates a new content handler.
func NewContentHandler(content db.ContentCollection, recorder ActivityRecorder, dispatcher NotificationDispatcher, hub realtime.Broadcaster) *ContentHandler {
	return &ContentHandler{
		content:    content,
		recorder:   recorder,
		dispatcher: dispatcher,
		hub:        hub,
	}
}

// Types handles GET /api/content/types.
func (h *ContentHandler) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.content.DistinctTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, types)
}

// Get handles GET /api/content/{type}. A type read for the first time is
// created with a derived title and empty body.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	contentType := r.PathValue("type")
	if !models.IsValidContentType(contentType) {
		writeError(w, http.StatusNotFound, "Unknown content type")
		return
	}

	content, err := h.content.GetOrCreateDefault(r.Context(), contentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, content)
}

// Update handles PUT /api/content/{type}: upsert, then for employee
// actors an audit entry and an admin-only notification, both pushed to
// the admin room.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	contentType := r.PathValue("type")
	if !models.IsValidContentType(contentType) {
		writeError(w, http.StatusNotFound, "Unknown content type")
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	content, err := h.content.Upsert(r.Context(), contentType, req.Title, req.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	if claims.Role == models.RoleEmployee {
		entry, err := h.recorder.Record(r.Context(), claims.UserID, models.ActionUpdateContent,
			fmt.Sprintf("Content: %s", contentType), linkContentEditor)
		if err != nil {
			log.WithError(err).Error("failed to record activity")
		} else {
			h.hub.Broadcast([]string{realtime.RoomAdmin}, realtime.EventActivityLogUpdate, entry)
		}

		message := fmt.Sprintf("Employee %s updated the '%s' content.", claims.FirstName, contentType)
		audience := models.Audience{Roles: []models.Role{models.RoleAdmin}, Module: "content"}
		notifications, err := h.dispatcher.Dispatch(r.Context(), audience, message, map[models.Role]string{
			models.RoleAdmin: linkContentEditor,
		})
		if err != nil {
			log.WithError(err).Error("failed to dispatch content notification")
		}
		if len(notifications) > 0 {
			h.hub.Broadcast([]string{realtime.RoomAdmin}, realtime.EventNotification, notifications[0])
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Content updated successfully",
		"data":    content,
	})
}
