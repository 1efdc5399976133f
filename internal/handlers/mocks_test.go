package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/middleware"
	"github.com/ukydev/car-rental-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCarCollection implements db.CarCollection backed by in-memory state.
type fakeCarCollection struct {
	cars      []models.Car
	total     int64
	byID      map[string]models.Car
	insertErr error

	lastFilter db.CarFilter
	lastPage   int
	lastLimit  int
}

func (f *fakeCarCollection) InsertCar(ctx context.Context, car models.Car) (*models.Car, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	car.ID = primitive.NewObjectID()
	car.CreatedAt = time.Now()
	car.UpdatedAt = car.CreatedAt
	return &car, nil
}

func (f *fakeCarCollection) FindCars(ctx context.Context, filter db.CarFilter, page, limit int) ([]models.Car, int64, error) {
	f.lastFilter = filter
	f.lastPage = page
	f.lastLimit = limit
	return f.cars, f.total, nil
}

func (f *fakeCarCollection) FindCarByID(ctx context.Context, id string) (*models.Car, error) {
	if car, ok := f.byID[id]; ok {
		return &car, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeCarCollection) UpdateCar(ctx context.Context, id string, car models.Car) (*models.Car, error) {
	existing, ok := f.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	car.ID = existing.ID
	car.UpdatedAt = time.Now()
	return &car, nil
}

func (f *fakeCarCollection) SetArchived(ctx context.Context, id string, archived bool) (*models.Car, error) {
	car, ok := f.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	car.Archived = archived
	return &car, nil
}

// fakePromotionCollection implements db.PromotionCollection.
type fakePromotionCollection struct {
	effective []models.Promotion
	all       []models.Promotion
	inserted  []models.Promotion
	notFound  bool
}

func (f *fakePromotionCollection) InsertPromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error) {
	promotion.ID = primitive.NewObjectID()
	promotion.CreatedAt = time.Now()
	f.inserted = append(f.inserted, promotion)
	return &promotion, nil
}

func (f *fakePromotionCollection) FindEffective(ctx context.Context, now time.Time) ([]models.Promotion, error) {
	return f.effective, nil
}

func (f *fakePromotionCollection) FindAll(ctx context.Context) ([]models.Promotion, error) {
	return f.all, nil
}

func (f *fakePromotionCollection) UpdatePromotion(ctx context.Context, id string, promotion models.Promotion) (*models.Promotion, error) {
	if f.notFound {
		return nil, db.ErrNotFound
	}
	return &promotion, nil
}

func (f *fakePromotionCollection) DeletePromotion(ctx context.Context, id string) error {
	if f.notFound {
		return db.ErrNotFound
	}
	return nil
}

// fakeContentCollection implements db.ContentCollection.
type fakeContentCollection struct {
	gotType string
	upserts []models.Content
}

func (f *fakeContentCollection) GetOrCreateDefault(ctx context.Context, contentType string) (*models.Content, error) {
	f.gotType = contentType
	return &models.Content{
		ID:    primitive.NewObjectID(),
		Type:  contentType,
		Title: models.DefaultContentTitle(contentType),
	}, nil
}

func (f *fakeContentCollection) Upsert(ctx context.Context, contentType, title, body string) (*models.Content, error) {
	content := models.Content{
		ID:      primitive.NewObjectID(),
		Type:    contentType,
		Title:   title,
		Content: body,
	}
	f.upserts = append(f.upserts, content)
	return &content, nil
}

func (f *fakeContentCollection) DistinctTypes(ctx context.Context) ([]string, error) {
	return models.ContentTypes, nil
}

// fakeFAQCollection implements db.FAQCollection.
type fakeFAQCollection struct {
	faqs           []models.FAQ
	lastActiveOnly bool
	notFound       bool
}

func (f *fakeFAQCollection) InsertFAQ(ctx context.Context, faq models.FAQ) (*models.FAQ, error) {
	faq.ID = primitive.NewObjectID()
	return &faq, nil
}

func (f *fakeFAQCollection) FindFAQs(ctx context.Context, activeOnly bool) ([]models.FAQ, error) {
	f.lastActiveOnly = activeOnly
	return f.faqs, nil
}

func (f *fakeFAQCollection) UpdateFAQ(ctx context.Context, id string, faq models.FAQ) (*models.FAQ, error) {
	if f.notFound {
		return nil, db.ErrNotFound
	}
	return &faq, nil
}

func (f *fakeFAQCollection) DeleteFAQ(ctx context.Context, id string) error {
	if f.notFound {
		return db.ErrNotFound
	}
	return nil
}

// fakeNotificationStore implements db.NotificationCollection.
type fakeNotificationStore struct {
	byRole    map[models.Role][]models.Notification
	markedIDs []string
	notFound  bool
}

func (f *fakeNotificationStore) InsertNotification(ctx context.Context, n models.Notification) (*models.Notification, error) {
	n.ID = primitive.NewObjectID()
	return &n, nil
}

func (f *fakeNotificationStore) FindByRole(ctx context.Context, role models.Role) ([]models.Notification, error) {
	return f.byRole[role], nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, id string) error {
	if f.notFound {
		return db.ErrNotFound
	}
	f.markedIDs = append(f.markedIDs, id)
	return nil
}

// fakeActivityStore implements db.ActivityLogCollection.
type fakeActivityStore struct {
	entries   []models.ActivityLogEntry
	lastLimit int
}

func (f *fakeActivityStore) InsertEntry(ctx context.Context, entry models.ActivityLogEntry) (*models.ActivityLogEntry, error) {
	entry.ID = primitive.NewObjectID()
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeActivityStore) FindRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	f.lastLimit = limit
	return f.entries, nil
}

// fakeRecorder implements ActivityRecorder and captures calls.
type recordCall struct {
	actorID     string
	action      models.ActionType
	description string
	link        string
}

type fakeRecorder struct {
	calls []recordCall
	err   error
}

func (f *fakeRecorder) Record(ctx context.Context, actorID string, action models.ActionType, description, link string) (*models.ActivityLogEntry, error) {
	f.calls = append(f.calls, recordCall{actorID, action, description, link})
	if f.err != nil {
		return nil, f.err
	}
	return &models.ActivityLogEntry{
		ID:          primitive.NewObjectID(),
		ActorID:     actorID,
		Action:      action,
		Description: description,
		Link:        link,
		CreatedAt:   time.Now(),
	}, nil
}

// fakeDispatcher implements NotificationDispatcher and captures calls.
type dispatchCall struct {
	audience models.Audience
	message  string
	links    map[models.Role]string
}

type fakeDispatcher struct {
	calls []dispatchCall
	err   error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, audience models.Audience, message string, linksByRole map[models.Role]string) ([]models.Notification, error) {
	f.calls = append(f.calls, dispatchCall{audience, message, linksByRole})
	if f.err != nil {
		return nil, f.err
	}
	notifications := make([]models.Notification, 0, len(audience.Roles))
	for _, role := range audience.Roles {
		notifications = append(notifications, models.Notification{
			ID:        primitive.NewObjectID(),
			Role:      role,
			Audience:  audience,
			Message:   message,
			Link:      linksByRole[role],
			CreatedAt: time.Now(),
		})
	}
	return notifications, nil
}

// fakeHub implements realtime.Broadcaster and captures broadcasts.
type broadcastCall struct {
	rooms   []string
	event   string
	payload interface{}
}

type fakeHub struct {
	calls []broadcastCall
}

func (f *fakeHub) Broadcast(rooms []string, event string, payload interface{}) {
	f.calls = append(f.calls, broadcastCall{rooms, event, payload})
}

// events returns, in order, the events broadcast to the given room.
func (f *fakeHub) events(room string) []string {
	var out []string
	for _, call := range f.calls {
		for _, r := range call.rooms {
			if r == room {
				out = append(out, call.event)
			}
		}
	}
	return out
}

func employeeClaims() *models.Claims {
	return &models.Claims{UserID: "emp-1", Username: "alex", FirstName: "Alex", Role: models.RoleEmployee}
}

func adminClaims() *models.Claims {
	return &models.Claims{UserID: "adm-1", Username: "boss", FirstName: "Pat", Role: models.RoleAdmin}
}

func withClaims(r *http.Request, claims *models.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, claims))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// apiResponse mirrors the {success, message, data} envelope.
type apiResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
