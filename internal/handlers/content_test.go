package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/car-rental-backoffice/internal/models"
	"github.com/ukydev/car-rental-backoffice/internal/realtime"
)

func newContentHandler(content *fakeContentCollection) (*ContentHandler, *fakeRecorder, *fakeDispatcher, *fakeHub) {
	recorder := &fakeRecorder{}
	dispatcher := &fakeDispatcher{}
	hub := &fakeHub{}
	return NewContentHandler(content, recorder, dispatcher, hub), recorder, dispatcher, hub
}

func TestContentTypes(t *testing.T) {
	handler, _, _, _ := newContentHandler(&fakeContentCollection{})

	rec := httptest.NewRecorder()
	handler.Types(rec, httptest.NewRequest(http.MethodGet, "/api/content/types", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var types []string
	require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &types))
	assert.Contains(t, types, "mission")
	assert.Contains(t, types, "bookingTerms")
}

func TestContentGet_UnknownTypeIsNotFound(t *testing.T) {
	content := &fakeContentCollection{}
	handler, _, _, _ := newContentHandler(content)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/content/blog", nil)
	req.SetPathValue("type", "blog")
	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, content.gotType)
}

func TestContentGet_CreatesDefaultOnFirstRead(t *testing.T) {
	content := &fakeContentCollection{}
	handler, _, _, _ := newContentHandler(content)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/content/bookingTerms", nil)
	req.SetPathValue("type", "bookingTerms")
	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bookingTerms", content.gotType)

	var doc models.Content
	require.NoError(t, json.Unmarshal(decodeResponse(t, rec).Data, &doc))
	assert.Equal(t, "Booking Terms", doc.Title)
}

func TestContentUpdate_EmployeeActorFansOutToAdminOnly(t *testing.T) {
	content := &fakeContentCollection{}
	handler, recorder, dispatcher, hub := newContentHandler(content)

	rec := httptest.NewRecorder()
	req := withClaims(jsonRequest(http.MethodPut, "/api/content/mission", `{"title":"Our Mission","content":"Drive happy."}`), employeeClaims())
	req.SetPathValue("type", "mission")
	handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, content.upserts, 1)
	assert.Equal(t, "Our Mission", content.upserts[0].Title)

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, models.ActionUpdateContent, recorder.calls[0].action)
	assert.Equal(t, "/owner/content-management", recorder.calls[0].link)

	require.Len(t, dispatcher.calls, 1)
	call := dispatcher.calls[0]
	assert.Equal(t, []models.Role{models.RoleAdmin}, call.audience.Roles)
	assert.Equal(t, "content", call.audience.Module)
	assert.Equal(t, "Employee Alex updated the 'mission' content.", call.message)

	assert.Equal(t, []string{realtime.EventActivityLogUpdate, realtime.EventNotification}, hub.events(realtime.RoomAdmin))
	assert.Empty(t, hub.events(realtime.RoomEmployee))
	assert.Empty(t, hub.events(realtime.RoomCustomer))
}

func TestContentUpdate_AdminActorIsSilent(t *testing.T) {
	content := &fakeContentCollection{}
	handler, recorder, dispatcher, hub := newContentHandler(content)

	rec := httptest.NewRecorder()
	req := withClaims(jsonRequest(http.MethodPut, "/api/content/mission", `{"title":"Our Mission","content":"Drive happy."}`), adminClaims())
	req.SetPathValue("type", "mission")
	handler.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, content.upserts, 1)
	assert.Empty(t, recorder.calls)
	assert.Empty(t, dispatcher.calls)
	assert.Empty(t, hub.calls)
}

func TestContentUpdate_TitleRequired(t *testing.T) {
	content := &fakeContentCollection{}
	handler, _, _, _ := newContentHandler(content)

	rec := httptest.NewRecorder()
	req := withClaims(jsonRequest(http.MethodPut, "/api/content/mission", `{"content":"no title"}`), employeeClaims())
	req.SetPathValue("type", "mission")
	handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, content.upserts)
}

func TestContentUpdate_UnknownTypeIsNotFound(t *testing.T) {
	content := &fakeContentCollection{}
	handler, _, _, _ := newContentHandler(content)

	rec := httptest.NewRecorder()
	req := withClaims(jsonRequest(http.MethodPut, "/api/content/blog", `{"title":"x","content":"y"}`), employeeClaims())
	req.SetPathValue("type", "blog")
	handler.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, content.upserts)
}
