package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req EventRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Lunch with Sam", req.Summary)

		json.NewEncoder(w).Encode(Event{ID: "ev1", Summary: req.Summary})
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	created, err := client.CreateEvent(context.Background(), "primary", EventRequest{
		Summary: "Lunch with Sam",
		Start:   EventDateTime{DateTime: "2025-03-03T12:00:00+11:00", TimeZone: "Australia/Sydney"},
		End:     EventDateTime{DateTime: "2025-03-03T13:00:00+11:00", TimeZone: "Australia/Sydney"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ev1", created.ID)
}

func TestGetEvent_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	event, err := client.GetEvent(context.Background(), "primary", "missing")

	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestListEvents_QueryParams(t *testing.T) {
	min := time.Date(2025, 3, 3, 11, 55, 0, 0, time.UTC)
	max := min.Add(10 * time.Minute)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("singleEvents"))
		assert.Equal(t, min.Format(time.RFC3339), q.Get("timeMin"))
		assert.Equal(t, max.Format(time.RFC3339), q.Get("timeMax"))
		assert.Equal(t, "standup", q.Get("q"))

		json.NewEncoder(w).Encode(eventList{Items: []Event{{ID: "ev1"}, {ID: "ev2"}}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	events, err := client.ListEvents(context.Background(), "primary", ListQuery{
		TimeMin: min, TimeMax: max, Query: "standup",
	})

	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestDeleteEvent_ToleratesMissing(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusNotFound, http.StatusGone} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(server.URL, "tok")
		err := client.DeleteEvent(context.Background(), "primary", "ev1")

		assert.NoError(t, err, "status %d", status)
		server.Close()
	}
}

func TestDeleteEvent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	err := client.DeleteEvent(context.Background(), "primary", "ev1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
