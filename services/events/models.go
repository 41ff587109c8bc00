package events

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Schema is the validated shape of an incoming calendar request. It is the
// opaque event a pipeline run is built around.
type Schema struct {
	ID        uuid.UUID `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Request   string    `json:"request"`
}

// Record is a persisted event row: the original payload plus, once a worker
// has processed it, the final pipeline context snapshot.
type Record struct {
	ID           uuid.UUID       `json:"id"`
	Payload      Schema          `json:"payload"`
	Result       json.RawMessage `json:"result,omitempty"`
	WorkflowType string          `json:"workflowType"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// SubmitRequest is the JSON body accepted by the submission endpoint.
type SubmitRequest struct {
	Request string `json:"request"`
}

// SubmitResponse acknowledges an accepted event.
type SubmitResponse struct {
	Message string    `json:"message"`
	EventID uuid.UUID `json:"event_id"`
	TaskID  uuid.UUID `json:"task_id"`
}
