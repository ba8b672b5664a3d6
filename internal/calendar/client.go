package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Event is an externally scheduled block fetched from the studio's shared
// calendar feed. Only the date and slot label matter for availability; the
// rest is kept for sync diagnostics.
type Event struct {
	UID     string `json:"uid"`
	Summary string `json:"summary"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // slot label, 12h or 24h
}

// Client fetches externally scheduled events for a date window.
type Client interface {
	ListEvents(ctx context.Context, from, to string) ([]Event, error)
}

// FeedClient reads the JSON feed exported by the studio's calendar
// integration.
type FeedClient struct {
	url   string
	token string
	http  *http.Client
}

func NewFeedClient(url, token string) *FeedClient {
	return &FeedClient{
		url:   url,
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *FeedClient) ListEvents(ctx context.Context, from, to string) ([]Event, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s?from=%s&to=%s", c.url, from, to),
		nil,
	)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned status %d", resp.StatusCode)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}

var _ Client = (*FeedClient)(nil)
