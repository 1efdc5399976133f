package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/car-rental-backoffice/internal/db"
	"github.com/ukydev/car-rental-backoffice/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFeedbackCollection implements db.FeedbackCollection.
type fakeFeedbackCollection struct {
	entries  []models.Feedback
	notFound bool
}

func (f *fakeFeedbackCollection) InsertFeedback(ctx context.Context, feedback models.Feedback) (*models.Feedback, error) {
	feedback.ID = primitive.NewObjectID()
	f.entries = append(f.entries, feedback)
	return &feedback, nil
}

func (f *fakeFeedbackCollection) FindApproved(ctx context.Context) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range f.entries {
		if fb.Approved {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackCollection) FindAll(ctx context.Context) ([]models.Feedback, error) {
	return f.entries, nil
}

func (f *fakeFeedbackCollection) FindByUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range f.entries {
		if fb.UserID == userID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackCollection) SetApproved(ctx context.Context, id string) (*models.Feedback, error) {
	if f.notFound {
		return nil, db.ErrNotFound
	}
	for i := range f.entries {
		if f.entries[i].ID.Hex() == id {
			f.entries[i].Approved = true
			return &f.entries[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeFeedbackCollection) DeleteFeedback(ctx context.Context, id string) error {
	if f.notFound {
		return db.ErrNotFound
	}
	return nil
}

func TestFeedbackCreate_AuthorshipFromToken(t *testing.T) {
	store := &fakeFeedbackCollection{}
	handler := NewFeedbackHandler(store)

	rec := httptest.NewRecorder()
	// userId in the body must not override the authenticated user
	req := withClaims(jsonRequest(http.MethodPost, "/api/feedback", `{"rating":5,"comment":"Smooth booking","userId":"someone-else"}`), employeeClaims())
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.entries, 1)
	assert.Equal(t, "emp-1", store.entries[0].UserID)
	assert.Equal(t, "Alex", store.entries[0].UserName)
	assert.Equal(t, 5, store.entries[0].Rating)
	// new submissions always enter the moderation queue
	assert.False(t, store.entries[0].Approved)
}

func TestFeedbackCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"rating too low", `{"rating":0,"comment":"x"}`},
		{"rating too high", `{"rating":6,"comment":"x"}`},
		{"missing comment", `{"rating":4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeFeedbackCollection{}
			handler := NewFeedbackHandler(store)

			rec := httptest.NewRecorder()
			handler.Create(rec, withClaims(jsonRequest(http.MethodPost, "/api/feedback", tt.body), employeeClaims()))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, store.entries)
		})
	}
}

func TestFeedbackCreate_RequiresAuthentication(t *testing.T) {
	handler := NewFeedbackHandler(&fakeFeedbackCollection{})

	rec := httptest.NewRecorder()
	handler.Create(rec, jsonRequest(http.MethodPost, "/api/feedback", `{"rating":5,"comment":"x"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFeedbackListPublic_ApprovedOnly(t *testing.T) {
	store := &fakeFeedbackCollection{entries: []models.Feedback{
		{ID: primitive.NewObjectID(), Comment: "visible", Approved: true},
		{ID: primitive.NewObjectID(), Comment: "pending", Approved: false},
	}}
	handler := NewFeedbackHandler(store)

	rec := httptest.NewRecorder()
	handler.ListPublic(rec, httptest.NewRequest(http.MethodGet, "/api/feedback/public", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var feedback []models.Feedback
	require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &feedback))
	require.Len(t, feedback, 1)
	assert.Equal(t, "visible", feedback[0].Comment)
}

func TestFeedbackListMine_ScopedToRequester(t *testing.T) {
	store := &fakeFeedbackCollection{entries: []models.Feedback{
		{ID: primitive.NewObjectID(), UserID: "emp-1", Comment: "mine"},
		{ID: primitive.NewObjectID(), UserID: "other", Comment: "not mine"},
	}}
	handler := NewFeedbackHandler(store)

	rec := httptest.NewRecorder()
	handler.ListMine(rec, withClaims(httptest.NewRequest(http.MethodGet, "/api/feedback/mine", nil), employeeClaims()))

	require.Equal(t, http.StatusOK, rec.Code)
	var feedback []models.Feedback
	require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &feedback))
	require.Len(t, feedback, 1)
	assert.Equal(t, "mine", feedback[0].Comment)
}

func TestFeedbackApprove(t *testing.T) {
	entry := models.Feedback{ID: primitive.NewObjectID(), Comment: "pending"}
	store := &fakeFeedbackCollection{entries: []models.Feedback{entry}}
	handler := NewFeedbackHandler(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/feedback/"+entry.ID.Hex()+"/approve", nil)
	req.SetPathValue("id", entry.ID.Hex())
	handler.Approve(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.entries[0].Approved)
}

func TestFeedbackApprove_NotFound(t *testing.T) {
	handler := NewFeedbackHandler(&fakeFeedbackCollection{notFound: true})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/feedback/x/approve", nil)
	req.SetPathValue("id", "x")
	handler.Approve(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackDelete_NotFound(t *testing.T) {
	handler := NewFeedbackHandler(&fakeFeedbackCollection{notFound: true})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/feedback/x", nil)
	req.SetPathValue("id", "x")
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
