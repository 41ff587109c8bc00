package events

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles event persistence in PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// InitSchema creates the events table if it does not exist.
func (r *Repository) InitSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id            UUID PRIMARY KEY,
			payload       JSONB NOT NULL,
			result        JSONB,
			workflow_type TEXT NOT NULL DEFAULT 'calendar_pipeline',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Insert stores a freshly accepted event.
func (r *Repository) Insert(ctx context.Context, event Schema) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO events (id, payload)
		VALUES ($1, $2)
	`, event.ID, payload)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Get retrieves an event by ID. Returns nil, nil if not found.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rec Record
	var payload []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, payload, result, workflow_type, created_at, updated_at
		FROM events WHERE id = $1
	`, id).Scan(&rec.ID, &payload, &rec.Result, &rec.WorkflowType, &rec.CreatedAt, &rec.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	if err := json.Unmarshal(payload, &rec.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}
	return &rec, nil
}

// StoreResult attaches the final pipeline context snapshot to the event.
func (r *Repository) StoreResult(ctx context.Context, id uuid.UUID, result any) error {
	snapshot, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal run result: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		UPDATE events SET result = $2, updated_at = NOW()
		WHERE id = $1
	`, id, snapshot)
	if err != nil {
		return fmt.Errorf("store run result: %w", err)
	}
	return nil
}

// InitDB creates the schema. Called from main on startup.
func InitDB(ctx context.Context, pool *pgxpool.Pool) error {
	return NewRepository(pool).InitSchema(ctx)
}
