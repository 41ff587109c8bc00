package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	// KindService marks failures of an external collaborator (LLM, calendar API).
	KindService Kind = "service_error"
	// KindValidation marks non-retryable validation failures.
	KindValidation Kind = "validation_error"
	// KindPipeline is the catch-all for anything else raised during traversal.
	KindPipeline Kind = "pipeline_error"
)

// Failure is a classified error raised by a node. The executor converts the
// first Failure observed during a run into the context's ErrorRecord.
type Failure struct {
	Kind    Kind
	Message string
}

func (f *Failure) Error() string { return f.Message }

// ServiceFailure reports that an external collaborator call failed.
func ServiceFailure(operation string, err error) *Failure {
	return &Failure{Kind: KindService, Message: fmt.Sprintf("%s failed: %v", operation, err)}
}

// ValidationFailure reports that a request cannot proceed.
func ValidationFailure(reason string) *Failure {
	return &Failure{Kind: KindValidation, Message: "validation failed: " + reason}
}

// ErrorRecord is stored on a TaskContext when a run halts abnormally. It is the
// only failure signal a run produces; Run itself never returns an error.
type ErrorRecord struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Node      string    `json:"node,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// newErrorRecord captures err against the node that was active when it was
// raised. Unclassified errors default to KindPipeline.
func newErrorRecord(node string, err error) *ErrorRecord {
	rec := &ErrorRecord{
		Kind:      KindPipeline,
		Message:   err.Error(),
		Node:      node,
		Timestamp: time.Now().UTC(),
	}
	var failure *Failure
	if errors.As(err, &failure) {
		rec.Kind = failure.Kind
	}
	return rec
}
