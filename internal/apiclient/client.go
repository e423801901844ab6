package apiclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trainercal/internal/api"
	"trainercal/internal/availability"
	"trainercal/internal/booking"
	"trainercal/internal/calendar"
	"trainercal/internal/events"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnauthorized     = errors.New("session rejected by server")
	ErrStreamClosed     = errors.New("change stream closed by server")
)

// APIError is a non-2xx answer from the calendar API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the calendar API. It implements calendardata.Source
// over the raw resource endpoints. Mutations publish CalendarChanged on
// the bus so views refetch.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	bus     *events.Bus
}

func NewClient(baseURL string, session *Session, bus *events.Bus, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
		bus:     bus,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) BookingRequests(ctx context.Context, trainerID int, window calendar.Window) ([]booking.Request, error) {
	var out []booking.Request
	err := c.do(ctx, http.MethodGet, trainerPath(trainerID, "booking-requests")+windowQuery(window), nil, &out)
	return out, err
}

func (c *Client) Events(ctx context.Context, trainerID int, window calendar.Window) ([]booking.Event, error) {
	var out []booking.Event
	err := c.do(ctx, http.MethodGet, trainerPath(trainerID, "events")+windowQuery(window), nil, &out)
	return out, err
}

func (c *Client) Availability(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error) {
	var out []calendar.Availability
	err := c.do(ctx, http.MethodGet, trainerPath(trainerID, "availability")+windowQuery(window), nil, &out)
	return out, err
}

func (c *Client) BlockedWeekdays(ctx context.Context, trainerID int) ([]int, error) {
	var out api.WeekdaysResponse
	if err := c.do(ctx, http.MethodGet, trainerPath(trainerID, "blocked-weekdays"), nil, &out); err != nil {
		return nil, err
	}
	return out.Weekdays, nil
}

func (c *Client) SetAvailability(ctx context.Context, trainerID int, req availability.SetRequest) (*calendar.Availability, error) {
	var out calendar.Availability
	if err := c.do(ctx, http.MethodPut, trainerPath(trainerID, "availability"), req, &out); err != nil {
		return nil, err
	}
	c.changed(trainerID, "availability")
	return &out, nil
}

func (c *Client) BulkSetAvailability(ctx context.Context, trainerID int, req availability.BulkRequest) (int, error) {
	var out availability.BulkResponse
	if err := c.do(ctx, http.MethodPut, trainerPath(trainerID, "availability/bulk"), req, &out); err != nil {
		return 0, err
	}
	c.changed(trainerID, "availability_bulk")
	return out.Updated, nil
}

func (c *Client) SetBlockedWeekdays(ctx context.Context, trainerID int, weekdays []int) ([]int, error) {
	if weekdays == nil {
		weekdays = []int{}
	}

	var out api.WeekdaysResponse
	err := c.do(ctx, http.MethodPut, trainerPath(trainerID, "blocked-weekdays"), availability.BlockedWeekdaysRequest{Weekdays: weekdays}, &out)
	if err != nil {
		return nil, err
	}
	c.changed(trainerID, "blocked_weekdays")
	return out.Weekdays, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, requestID int, status string) (*booking.Request, error) {
	var out booking.Request
	path := fmt.Sprintf("/booking-requests/%d/status", requestID)
	if err := c.do(ctx, http.MethodPost, path, booking.UpdateStatusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	c.changed(out.TrainerID, "booking_status")
	return &out, nil
}

// WatchChanges follows the trainer's change stream and republishes every
// CalendarChanged on the client's bus until ctx is done or the stream ends.
// Views on the same bus refetch on each one.
func (c *Client) WatchChanges(ctx context.Context, trainerID int) error {
	token := c.session.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+trainerPath(trainerID, "calendar/changes"), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "text/event-stream")

	// The stream outlives any request timeout.
	streamClient := *c.http
	streamClient.Timeout = 0

	resp, err := streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("watch changes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Logout("unauthorized")
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var event string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			event = ""
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:") && event == events.TopicCalendarChanged:
			var e events.CalendarChanged
			if err := json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &e); err != nil {
				return fmt.Errorf("decode change: %w", err)
			}
			if c.bus != nil {
				c.bus.Publish(e)
			}
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("watch changes: %w", err)
	}
	return ErrStreamClosed
}

func (c *Client) changed(trainerID int, reason string) {
	if c.bus != nil {
		c.bus.Publish(events.CalendarChanged{TrainerID: trainerID, Reason: reason})
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := c.session.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Logout("unauthorized")
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func trainerPath(trainerID int, resource string) string {
	return fmt.Sprintf("/trainers/%d/%s", trainerID, resource)
}

func windowQuery(w calendar.Window) string {
	q := url.Values{}
	q.Set("from", w.FromString())
	q.Set("to", w.ToString())
	return "?" + q.Encode()
}
