// Package calendar provides a typed client for a Google-style calendar
// events API (create, get, list, delete).
package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Service is the calendar operation surface consumed by pipeline nodes.
type Service interface {
	CreateEvent(ctx context.Context, calendarID string, req EventRequest) (*Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error)
	ListEvents(ctx context.Context, calendarID string, query ListQuery) ([]Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Client calls the calendar REST API with bearer-token auth.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns a client with a 10-second timeout.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateEvent inserts an event into the calendar and returns the created
// resource.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, req EventRequest) (*Event, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode event body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(calendarID))
	resp, err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}

	var created Event
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created event: %w", err)
	}
	return &created, nil
}

// GetEvent fetches a single event by ID. Returns nil, nil when the event does
// not exist.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(calendarID), url.PathEscape(eventID))
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}

	var event Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &event, nil
}

// ListEvents returns the events matching the query, expanded to single
// instances and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, calendarID string, query ListQuery) ([]Event, error) {
	params := url.Values{}
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	if !query.TimeMin.IsZero() {
		params.Set("timeMin", query.TimeMin.Format(time.RFC3339))
	}
	if !query.TimeMax.IsZero() {
		params.Set("timeMax", query.TimeMax.Format(time.RFC3339))
	}
	if query.Query != "" {
		params.Set("q", query.Query)
	}
	if query.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(query.MaxResults))
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s",
		c.baseURL, url.PathEscape(calendarID), params.Encode())
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}

	var result eventList
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode event list: %w", err)
	}
	return result.Items, nil
}

// DeleteEvent removes an event. A missing event is not an error: the desired
// state is already in place.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(calendarID), url.PathEscape(eventID))
	resp, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound, http.StatusGone:
		return nil
	default:
		return fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar API request failed: %w", err)
	}
	return resp, nil
}
