package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/middleware"
	"github.com/ukydev/car-rental-backoffice/internal/models"
	"github.com/ukydev/car-rental-backoffice/internal/pricing"
	"github.com/ukydev/car-rental-backoffice/internal/realtime"
)

// CarsHandler handles car listing and mutation requests, including the
// secondary effects (audit, notifications, realtime push) of mutations.
type CarsHandler struct {
	cars       db.CarCollection
	promotions db.PromotionCollection
	recorder   ActivityRecorder
	dispatcher NotificationDispatcher
	hub        realtime.Broadcaster
}

// NewCarsHandler creates a new cars handler.
func NewCarsHandler(cars db.CarCollection, promotions db.PromotionCollection, recorder ActivityRecorder, dispatcher NotificationDispatcher, hub realtime.Broadcaster) *CarsHandler {
	return &CarsHandler{
		cars:       cars,
		promotions: promotions,
		recorder:   recorder,
		dispatcher: dispatcher,
		hub:        hub,
	}
}

// List handles GET /api/cars: a filtered, paginated listing with every
// car annotated with its promotion-adjusted price. Promotions are read
// fresh on every call; a stale set would silently misprice.
func (h *CarsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 12
	}

	filter := db.CarFilter{
		Archived: q.Get("archived") == "true",
		Brand:    q.Get("brand"),
		Location: q.Get("location"),
	}
	if v := q.Get("isAvailable"); v != "" {
		available := v == "true"
		filter.IsAvailable = &available
	}
	if v := q.Get("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &max
		}
	}

	cars, total, err := h.cars.FindCars(r.Context(), filter, page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch cars")
		return
	}

	promotions, err := h.promotions.FindEffective(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch promotions")
		return
	}

	priced := make([]models.PricedCar, 0, len(cars))
	for i := range cars {
		result := pricing.Resolve(&cars[i], promotions)
		pc := models.PricedCar{
			Car:                cars[i],
			OriginalPrice:      result.OriginalPrice,
			AppliedPromotionID: result.AppliedPromotionID,
		}
		pc.PricePerDay = result.ResolvedPrice
		priced = append(priced, pc)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    priced,
		"pagination": map[string]interface{}{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// Get handles GET /api/cars/{id}.
func (h *CarsHandler) Get(w http.ResponseWriter, r *http.Request) {
	car, err := h.cars.FindCarByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Car not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeData(w, http.StatusOK, car)
}

// Create handles POST /api/cars. A new-car announcement always reaches
// the customer room; audit and notifications fire only for employee
// actors.
func (h *CarsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var car models.Car
	if err := decodeBody(r, &car); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if car.Brand == "" || car.Model == "" {
		writeError(w, http.StatusBadRequest, "Brand and model are required")
		return
	}
	car.OwnerID = claims.UserID

	created, err := h.cars.InsertCar(r.Context(), car)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create car")
		return
	}

	h.hub.Broadcast([]string{realtime.RoomCustomer}, realtime.EventNewCar, map[string]string{
		"message": fmt.Sprintf("New car available: %s %s", created.Brand, created.Model),
		"link":    fmt.Sprintf("/cars/%s", created.ID.Hex()),
	})

	h.fanOutCarMutation(r, claims, created, models.ActionCreateCar,
		fmt.Sprintf("Employee %s added a new car: %s %s", claims.FirstName, created.Brand, created.Model))

	writeData(w, http.StatusCreated, created)
}

// Update handles PUT /api/cars/{id}.
func (h *CarsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	var car models.Car
	if err := decodeBody(r, &car); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.cars.UpdateCar(r.Context(), r.PathValue("id"), car)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Car not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update car")
		return
	}

	h.fanOutCarMutation(r, claims, updated, models.ActionUpdateCar,
		fmt.Sprintf("Employee %s updated the car: %s %s", claims.FirstName, updated.Brand, updated.Model))

	writeData(w, http.StatusOK, updated)
}

// Archive handles PATCH /api/cars/{id}/archive.
func (h *CarsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	car, err := h.cars.SetArchived(r.Context(), r.PathValue("id"), true)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Car not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	h.fanOutCarMutation(r, claims, car, models.ActionArchiveCar,
		fmt.Sprintf("Employee %s archived the car: %s %s", claims.FirstName, car.Brand, car.Model))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Car archived successfully",
		"data":    car,
	})
}

// Unarchive handles PATCH /api/cars/{id}/unarchive. Restoring a car
// carries no audit or notification side effects.
func (h *CarsHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	car, err := h.cars.SetArchived(r.Context(), r.PathValue("id"), false)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Car not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Car restored successfully",
		"data":    car,
	})
}

// fanOutCarMutation runs the secondary effects of an employee-initiated
// car mutation: one audit entry, one notification per staff role, and
// the matching realtime pushes. The primary write has already committed,
// so every failure here is logged and absorbed.
func (h *CarsHandler) fanOutCarMutation(r *http.Request, claims *models.Claims, car *models.Car, action models.ActionType, message string) {
	if claims.Role != models.RoleEmployee {
		return
	}
	ctx := r.Context()

	entry, err := h.recorder.Record(ctx, claims.UserID, action,
		fmt.Sprintf("Car: %s %s", car.Brand, car.Model), linkManageCars)
	if err != nil {
		log.WithError(err).WithField("action", action).Error("failed to record activity")
	} else {
		h.hub.Broadcast([]string{realtime.RoomAdmin}, realtime.EventActivityLogUpdate, entry)
	}

	audience := models.Audience{
		Roles:  []models.Role{models.RoleAdmin, models.RoleEmployee},
		Module: "cars",
	}
	notifications, err := h.dispatcher.Dispatch(ctx, audience, message, map[models.Role]string{
		models.RoleAdmin:    linkManageCars,
		models.RoleEmployee: linkManageCarsStaff,
	})
	if err != nil {
		log.WithError(err).WithField("action", action).Error("failed to dispatch notifications")
	}
	for i := range notifications {
		h.hub.Broadcast([]string{string(notifications[i].Role)}, realtime.EventNotification, notifications[i])
	}
}

func decodeBody(r *http.Request, out interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.New("Failed to read request body")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.New("Invalid JSON")
	}
	return nil
}
