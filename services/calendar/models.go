package calendar

import "time"

// EventDateTime is the start or end of an event: a timed event carries
// DateTime + TimeZone, an all-day event carries Date.
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Attendee is a single invited participant.
type Attendee struct {
	Email string `json:"email"`
}

// EventRequest is the body for event creation.
type EventRequest struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	Attendees   []Attendee    `json:"attendees,omitempty"`
}

// Event is an event resource as returned by the calendar API.
type Event struct {
	ID          string        `json:"id"`
	Status      string        `json:"status,omitempty"`
	Summary     string        `json:"summary"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	Attendees   []Attendee    `json:"attendees,omitempty"`
	HTMLLink    string        `json:"htmlLink,omitempty"`
}

// ListQuery narrows an events listing.
type ListQuery struct {
	TimeMin    time.Time
	TimeMax    time.Time
	Query      string
	MaxResults int
}

type eventList struct {
	Items []Event `json:"items"`
}
