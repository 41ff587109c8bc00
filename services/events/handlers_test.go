package events

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo implements Repo for testing without a database.
type stubRepo struct {
	inserted []Schema
	record   *Record
	err      error
}

func (r *stubRepo) Insert(_ context.Context, event Schema) error {
	r.inserted = append(r.inserted, event)
	return r.err
}

func (r *stubRepo) Get(_ context.Context, _ uuid.UUID) (*Record, error) {
	return r.record, r.err
}

// stubQueue records enqueued event ids.
type stubQueue struct {
	enqueued []uuid.UUID
	taskID   uuid.UUID
}

func (q *stubQueue) Enqueue(eventID uuid.UUID) uuid.UUID {
	q.enqueued = append(q.enqueued, eventID)
	return q.taskID
}

func setupRouter(svc *Service) *mux.Router {
	router := mux.NewRouter()
	sub := router.PathPrefix("/api/v1/events").Subrouter()
	sub.HandleFunc("", svc.HandleSubmitEvent).Methods("POST")
	sub.HandleFunc("/{id}", svc.HandleGetEvent).Methods("GET")
	return router
}

func TestHandleSubmitEvent_Accepted(t *testing.T) {
	repo := &stubRepo{}
	queue := &stubQueue{taskID: uuid.New()}
	router := setupRouter(&Service{repo: repo, queue: queue})

	body, _ := json.Marshal(SubmitRequest{Request: "Schedule lunch with Sam on Friday at noon"})
	req := httptest.NewRequest("POST", "/api/v1/events", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp SubmitResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, queue.taskID, resp.TaskID)
	assert.NotEqual(t, uuid.Nil, resp.EventID)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "Schedule lunch with Sam on Friday at noon", repo.inserted[0].Request)
	assert.Equal(t, []uuid.UUID{resp.EventID}, queue.enqueued)
}

func TestHandleSubmitEvent_EmptyRequest(t *testing.T) {
	router := setupRouter(&Service{repo: &stubRepo{}, queue: &stubQueue{}})

	body, _ := json.Marshal(SubmitRequest{Request: "   "})
	req := httptest.NewRequest("POST", "/api/v1/events", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSubmitEvent_InvalidBody(t *testing.T) {
	router := setupRouter(&Service{repo: &stubRepo{}, queue: &stubQueue{}})

	req := httptest.NewRequest("POST", "/api/v1/events", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetEvent_Found(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{record: &Record{
		ID:      id,
		Payload: Schema{ID: id, Request: "Cancel my 3pm"},
		Result:  json.RawMessage(`{"nodes":{}}`),
	}}
	router := setupRouter(&Service{repo: repo, queue: &stubQueue{}})

	req := httptest.NewRequest("GET", "/api/v1/events/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var rec Record
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rec))
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "Cancel my 3pm", rec.Payload.Request)
}

func TestHandleGetEvent_NotFound(t *testing.T) {
	router := setupRouter(&Service{repo: &stubRepo{}, queue: &stubQueue{}})

	req := httptest.NewRequest("GET", "/api/v1/events/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetEvent_InvalidID(t *testing.T) {
	router := setupRouter(&Service{repo: &stubRepo{}, queue: &stubQueue{}})

	req := httptest.NewRequest("GET", "/api/v1/events/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
