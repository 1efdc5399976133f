package handlers

import (
	"errors"
	"net/http"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/models"
)

// FAQHandler handles FAQ CRUD requests.
type FAQHandler struct {
	faqs db.FAQCollection
}

// NewFAQHandler creates a new FAQ handler.
func NewFAQHandler(faqs db.FAQCollection) *FAQHandler {
	return &FAQHandler{faqs: faqs}
}

// ListPublic handles GET /api/faqs: active FAQs only.
func (h *FAQHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqs.FindFAQs(r.Context(), true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, faqs)
}

// ListAdmin handles GET /api/faqs/admin: all FAQs, active or not.
func (h *FAQHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.faqs.FindFAQs(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, faqs)
}

// Create handles POST /api/faqs.
func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	var faq models.FAQ
	if err := decodeBody(r, &faq); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if faq.Question == "" || faq.Answer == "" {
		writeError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	created, err := h.faqs.InsertFAQ(r.Context(), faq)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create FAQ")
		return
	}
	writeData(w, http.StatusCreated, created)
}

// Update handles PUT /api/faqs/{id}.
func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
	var faq models.FAQ
	if err := decodeBody(r, &faq); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.faqs.UpdateFAQ(r.Context(), r.PathValue("id"), faq)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "FAQ not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/faqs/{id}.
func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.faqs.DeleteFAQ(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "FAQ not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "FAQ deleted",
	})
}
