package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping repository tests")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestRepository_InitSchema(t *testing.T) {
	pool := getTestPool(t)
	repo := NewRepository(pool)

	err := repo.InitSchema(context.Background())
	require.NoError(t, err)

	// Running again should be idempotent
	err = repo.InitSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_InsertAndGet(t *testing.T) {
	pool := getTestPool(t)
	repo := NewRepository(pool)

	ctx := context.Background()
	require.NoError(t, repo.InitSchema(ctx))

	event := Schema{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Request:   "Schedule a dentist appointment next Tuesday at 9am",
	}
	require.NoError(t, repo.Insert(ctx, event))

	rec, err := repo.Get(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, event.ID, rec.ID)
	assert.Equal(t, event.Request, rec.Payload.Request)
	assert.Equal(t, "calendar_pipeline", rec.WorkflowType)
	assert.Nil(t, rec.Result)
}

func TestRepository_Get_NotFound(t *testing.T) {
	pool := getTestPool(t)
	repo := NewRepository(pool)

	ctx := context.Background()
	require.NoError(t, repo.InitSchema(ctx))

	rec, err := repo.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRepository_StoreResult(t *testing.T) {
	pool := getTestPool(t)
	repo := NewRepository(pool)

	ctx := context.Background()
	require.NoError(t, repo.InitSchema(ctx))

	event := Schema{ID: uuid.New(), Timestamp: time.Now().UTC(), Request: "Cancel my 3pm tomorrow"}
	require.NoError(t, repo.Insert(ctx, event))

	result := map[string]any{"nodes": map[string]any{"validate": map[string]any{"response": "ok"}}}
	require.NoError(t, repo.StoreResult(ctx, event.ID, result))

	rec, err := repo.Get(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.JSONEq(t, `{"nodes":{"validate":{"response":"ok"}}}`, string(rec.Result))
}
