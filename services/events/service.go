package events

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo abstracts event persistence for testability.
type Repo interface {
	Insert(ctx context.Context, event Schema) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
}

// Queue hands accepted events to the background processing pool.
type Queue interface {
	Enqueue(eventID uuid.UUID) uuid.UUID
}

// Service wires together the repository and the task queue for the event
// intake domain.
type Service struct {
	repo  Repo
	queue Queue
}

// NewService creates a Service with a real PostgreSQL repository.
func NewService(pool *pgxpool.Pool, queue Queue) *Service {
	return &Service{repo: NewRepository(pool), queue: queue}
}

// jsonMiddleware sets the Content-Type header to application/json.
func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// LoadRoutes registers event HTTP handlers on the given router.
func (s *Service) LoadRoutes(parentRouter *mux.Router) {
	router := parentRouter.PathPrefix("/events").Subrouter()
	router.StrictSlash(false)
	router.Use(jsonMiddleware)

	router.HandleFunc("", s.HandleSubmitEvent).Methods("POST")
	router.HandleFunc("/{id}", s.HandleGetEvent).Methods("GET")
}
