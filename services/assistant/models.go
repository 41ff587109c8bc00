package assistant

import (
	"fmt"
	"time"
)

// EventType is the classified intent of a calendar request.
type EventType string

const (
	EventCreate EventType = "create_event"
	EventUpdate EventType = "update_event"
	EventDelete EventType = "delete_event"
	EventView   EventType = "view_event"
)

// EventDateTime is an RFC3339 timestamp paired with its IANA timezone.
type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Parse returns the timestamp as a time.Time in its declared zone.
func (dt EventDateTime) Parse() (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, dt.DateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid RFC3339 dateTime %q: %w", dt.DateTime, err)
	}
	if dt.TimeZone != "" {
		loc, err := time.LoadLocation(dt.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid IANA timezone %q: %w", dt.TimeZone, err)
		}
		parsed = parsed.In(loc)
	}
	return parsed, nil
}

// ValidateResponse is the model's assessment of request safety and legitimacy.
type ValidateResponse struct {
	IsSafe        bool     `json:"is_safe"`
	RiskFlags     []string `json:"risk_flags"`
	IsValid       bool     `json:"is_valid"`
	InvalidReason string   `json:"invalid_reason"`
	Confidence    float64  `json:"confidence_score"`
	Reasoning     string   `json:"reasoning"`
}

// ClassifyResponse is the model's intent classification.
type ClassifyResponse struct {
	HasIntent   bool      `json:"has_intent"`
	RequestType EventType `json:"request_type"`
	IsBulk      bool      `json:"is_bulk_operation"`
	Confidence  float64   `json:"confidence_score"`
	Reasoning   string    `json:"reasoning"`
}

// CreateResponse carries the extracted fields for a new event.
type CreateResponse struct {
	Summary       string        `json:"summary"`
	Description   string        `json:"description"`
	Location      string        `json:"location"`
	Start         EventDateTime `json:"start"`
	End           EventDateTime `json:"end"`
	Attendees     []string      `json:"attendees"`
	ParsingIssues []string      `json:"parsing_issues"`
	Reasoning     string        `json:"reasoning"`
}

// TimeWindow is a search window centered on a referenced moment.
type TimeWindow struct {
	Center            EventDateTime `json:"center"`
	BufferMinutes     int           `json:"buffer_minutes"`
	OriginalReference string        `json:"original_reference"`
}

// Bounds expands the window to its start and end instants. The default
// buffer is five minutes either side of the center.
func (w TimeWindow) Bounds() (time.Time, time.Time, error) {
	center, err := w.Center.Parse()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	buffer := time.Duration(w.BufferMinutes) * time.Minute
	if w.BufferMinutes <= 0 {
		buffer = 5 * time.Minute
	}
	return center.Add(-buffer), center.Add(buffer), nil
}

// LookupResponse carries the extracted search criteria for an existing event:
// either a direct event id or a time window plus context terms.
type LookupResponse struct {
	EventID       string      `json:"event_id"`
	TimeWindow    *TimeWindow `json:"time_window"`
	ContextTerms  []string    `json:"context_terms"`
	ParsingIssues []string    `json:"parsing_issues"`
	Reasoning     string      `json:"reasoning"`
}
