package handlers

import (
	"errors"
	"net/http"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/middleware"
	"github.com/ukydev/car-rental-backoffice/internal/models"
)

// FeedbackHandler handles customer review requests. Submissions are held
// for moderation; only admin-approved entries reach the public listing.
type FeedbackHandler struct {
	feedback db.FeedbackCollection
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedback db.FeedbackCollection) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// ListPublic handles GET /api/feedback/public: approved reviews only.
func (h *FeedbackHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedback.FindApproved(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, feedback)
}

// ListAdmin handles GET /api/feedback: the full moderation queue.
func (h *FeedbackHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedback.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, feedback)
}

// ListMine handles GET /api/feedback/mine: the requester's own reviews,
// approved or pending.
func (h *FeedbackHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	feedback, err := h.feedback.FindByUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, feedback)
}

// Create handles POST /api/feedback. Authorship comes from the token,
// never the body, and new entries always start unapproved.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if req.Comment == "" {
		writeError(w, http.StatusBadRequest, "Comment is required")
		return
	}

	created, err := h.feedback.InsertFeedback(r.Context(), models.Feedback{
		UserID:   claims.UserID,
		UserName: claims.FirstName,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}
	writeData(w, http.StatusCreated, created)
}

// Approve handles PATCH /api/feedback/{id}/approve.
func (h *FeedbackHandler) Approve(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedback.SetApproved(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Feedback not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Feedback approved",
		"data":    feedback,
	})
}

// Delete handles DELETE /api/feedback/{id}.
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.feedback.DeleteFeedback(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Feedback not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Feedback deleted",
	})
}
