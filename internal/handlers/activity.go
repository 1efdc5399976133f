package handlers

import (
	"net/http"
	"strconv"

	"github.com/ukydev/car-rental-backoffice/internal/db"
)

// ActivityHandler serves the admin activity log feed.
type ActivityHandler struct {
	activity db.ActivityLogCollection
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activity db.ActivityLogCollection) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List handles GET /api/activity: recent entries, newest first.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := h.activity.FindRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, entries)
}
