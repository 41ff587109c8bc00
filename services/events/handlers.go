package events

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HandleSubmitEvent accepts a natural-language calendar request, persists it,
// and queues it for asynchronous pipeline processing. It returns immediately
// with 202 Accepted; processing results are fetched via HandleGetEvent.
func (s *Service) HandleSubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Request) == "" {
		writeError(w, http.StatusBadRequest, "request is required")
		return
	}

	event := Schema{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Request:   req.Request,
	}

	if err := s.repo.Insert(r.Context(), event); err != nil {
		slog.Error("Failed to store event", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	slog.Debug("Event stored", "id", event.ID)

	taskID := s.queue.Enqueue(event.ID)
	slog.Info("Queued event processing", "event_id", event.ID, "task_id", taskID)

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(SubmitResponse{
		Message: "Event accepted for processing",
		EventID: event.ID,
		TaskID:  taskID,
	})
}

// HandleGetEvent returns a stored event, including the pipeline result once
// processing has finished.
func (s *Service) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	rec, err := s.repo.Get(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get event", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rec)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
