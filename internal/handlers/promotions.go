package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/models"
	"github.com/ukydev/car-rental-backoffice/internal/realtime"
)

// PromotionsHandler handles promotion CRUD requests.
type PromotionsHandler struct {
	promotions db.PromotionCollection
	dispatcher NotificationDispatcher
	hub        realtime.Broadcaster
}

// NewPromotionsHandler creates a new promotions handler.
func NewPromotionsHandler(promotions db.PromotionCollection, dispatcher NotificationDispatcher, hub realtime.Broadcaster) *PromotionsHandler {
	return &PromotionsHandler{
		promotions: promotions,
		dispatcher: dispatcher,
		hub:        hub,
	}
}

// ListPublic handles GET /api/promotions: only currently effective
// promotions are visible to the public.
func (h *PromotionsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotions.FindEffective(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, promotions)
}

// ListAdmin handles GET /api/promotions/admin: every promotion,
// regardless of effectiveness.
func (h *PromotionsHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotions.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, promotions)
}

// Create handles POST /api/promotions. Creation always fans out one
// combined notification event to the admin and employee rooms, whatever
// the actor's role. The discount value is coerced to a number during
// decoding; an empty or non-numeric value persists as 0, never NaN.
func (h *PromotionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var promotion models.Promotion
	if err := decodeBody(r, &promotion); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePromotion(&promotion); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.promotions.InsertPromotion(r.Context(), promotion)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create promotion")
		return
	}

	message := fmt.Sprintf("A new promotion has been created: %s", created.Title)
	audience := models.Audience{Roles: []models.Role{models.RoleAdmin, models.RoleEmployee}}
	_, err = h.dispatcher.Dispatch(r.Context(), audience, message, map[models.Role]string{
		models.RoleAdmin:    linkManagePromotions,
		models.RoleEmployee: linkManagePromotions,
	})
	if err != nil {
		log.WithError(err).Error("failed to dispatch promotion notifications")
	}

	h.hub.Broadcast([]string{realtime.RoomAdmin, realtime.RoomEmployee}, realtime.EventNotification, map[string]string{
		"message": message,
		"link":    linkManagePromotions,
	})

	writeData(w, http.StatusCreated, created)
}

// Update handles PUT /api/promotions/{id}. Unlike creation, updates are
// silent: no audit entry, no notification, no broadcast.
func (h *PromotionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var promotion models.Promotion
	if err := decodeBody(r, &promotion); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePromotion(&promotion); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.promotions.UpdatePromotion(r.Context(), r.PathValue("id"), promotion)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Promotion not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/promotions/{id}. Deletion is silent, like
// updates.
func (h *PromotionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.promotions.DeletePromotion(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Promotion not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Promotion deleted",
	})
}

func validatePromotion(p *models.Promotion) error {
	if p.Title == "" {
		return errors.New("Title is required")
	}
	if p.DiscountType != models.DiscountPercentage && p.DiscountType != models.DiscountFixed {
		return errors.New("Invalid discount type")
	}
	if p.ApplicableTo == "" {
		p.ApplicableTo = models.ApplicableAll
	}
	if p.ApplicableTo != models.ApplicableAll && p.ApplicableTo != models.ApplicableCar {
		return errors.New("Invalid applicability scope")
	}
	if p.DiscountValue < 0 {
		return errors.New("Discount value cannot be negative")
	}
	return nil
}
