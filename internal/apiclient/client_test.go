package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainercal/internal/availability"
	"trainercal/internal/calendar"
	"trainercal/internal/calendardata"
	"trainercal/internal/events"
)

var _ calendardata.Source = (*Client)(nil)

const testToken = "token-123"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Invalid or malformed token"}`))
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/trainers/7/booking-requests", authorized(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-03-31", r.URL.Query().Get("to"))
		_, _ = w.Write([]byte(`[{"id":1,"trainer_id":7,"status":"pending","requested_date":"2024-03-06","created_at":"2024-02-20T10:00:00Z"}]`))
	}))
	mux.HandleFunc("/trainers/7/events", authorized(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":4,"trainer_id":7,"title":"Workshop","event_date":"2024-03-11","created_at":"2024-02-20T10:00:00Z"}]`))
	}))
	mux.HandleFunc("/trainers/7/availability", authorized(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var req availability.SetRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode(calendar.Availability{ID: 9, TrainerID: 7, Date: req.Date, Status: req.Status})
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"trainer_id":7,"date":"2024-03-04","status":"available"}]`))
	}))
	mux.HandleFunc("/trainers/7/blocked-weekdays", authorized(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var req availability.BlockedWeekdaysRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode(map[string][]int{"weekdays": req.Weekdays})
			return
		}
		_, _ = w.Write([]byte(`{"weekdays":[0]}`))
	}))
	mux.HandleFunc("/trainers/7/calendar/changes", authorized(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event:ready\ndata:{\"trainer_id\":7}\n\n"))
		_, _ = w.Write([]byte("event:ping\ndata:\n\n"))
		_, _ = w.Write([]byte("event:calendar.changed\ndata:{\"trainer_id\":7,\"reason\":\"availability\"}\n\n"))
	}))
	mux.HandleFunc("/booking-requests/3/status", authorized(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Status change not allowed"}`))
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ServesAsCalendarSource(t *testing.T) {
	srv := newTestServer(t)
	bus := events.NewBus()
	client := NewClient(srv.URL, NewSession(testToken, bus), bus, srv.Client())

	snap, err := calendardata.NewLoader(client).Load(context.Background(), 7, 2024, time.March)
	require.NoError(t, err)

	require.Len(t, snap.Days, 31)
	assert.Equal(t, 5, snap.Counts[string(calendar.StatusBlocked)])
	assert.Equal(t, 1, snap.Counts[string(calendar.StatusBooked)])
	assert.Equal(t, 1, snap.Counts[string(calendar.StatusAvailable)])
	require.Len(t, snap.AwaitingApproval, 1)
	assert.Equal(t, "request-1", snap.AwaitingApproval[0].ID)
}

func TestClient_MutationsPublishCalendarChanged(t *testing.T) {
	srv := newTestServer(t)
	bus := events.NewBus()
	client := NewClient(srv.URL, NewSession(testToken, bus), bus, srv.Client())

	var changes []events.CalendarChanged
	events.Subscribe(bus, func(e events.CalendarChanged) { changes = append(changes, e) })

	saved, err := client.SetAvailability(context.Background(), 7, availability.SetRequest{Date: "2024-03-04", Status: "available"})
	require.NoError(t, err)
	assert.Equal(t, 9, saved.ID)

	weekdays, err := client.SetBlockedWeekdays(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Empty(t, weekdays)

	assert.Equal(t, []events.CalendarChanged{
		{TrainerID: 7, Reason: "availability"},
		{TrainerID: 7, Reason: "blocked_weekdays"},
	}, changes)
}

func TestClient_APIError(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, NewSession(testToken, nil), nil, srv.Client())

	_, err := client.UpdateBookingStatus(context.Background(), 3, "confirmed")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Status change not allowed", apiErr.Message)
}

func TestClient_UnauthorizedLogsOut(t *testing.T) {
	srv := newTestServer(t)
	bus := events.NewBus()
	session := NewSession("expired", bus)
	client := NewClient(srv.URL, session, bus, srv.Client())

	var loggedOut []events.LoggedOut
	events.Subscribe(bus, func(e events.LoggedOut) { loggedOut = append(loggedOut, e) })

	_, err := client.BlockedWeekdays(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, session.Authenticated())
	assert.Equal(t, []events.LoggedOut{{Reason: "unauthorized"}}, loggedOut)

	_, err = client.BlockedWeekdays(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Len(t, loggedOut, 1)
}

func TestSession(t *testing.T) {
	bus := events.NewBus()
	var loggedOut int
	events.Subscribe(bus, func(events.LoggedOut) { loggedOut++ })

	s := NewSession("", bus)
	assert.False(t, s.Authenticated())

	s.Logout("explicit")
	assert.Zero(t, loggedOut)

	s.SetToken("abc")
	assert.True(t, s.Authenticated())
	assert.Equal(t, "abc", s.Token())

	s.Logout("explicit")
	assert.False(t, s.Authenticated())
	assert.Equal(t, 1, loggedOut)
}

func TestClient_WatchChanges(t *testing.T) {
	srv := newTestServer(t)
	bus := events.NewBus()
	client := NewClient(srv.URL, NewSession(testToken, bus), bus, srv.Client())

	var changes []events.CalendarChanged
	events.Subscribe(bus, func(e events.CalendarChanged) { changes = append(changes, e) })

	view := calendardata.NewView(context.Background(), calendardata.NewLoader(client), bus, 7, 2024, time.March)

	err := client.WatchChanges(context.Background(), 7)
	view.Close()

	assert.ErrorIs(t, err, ErrStreamClosed)
	assert.Equal(t, []events.CalendarChanged{{TrainerID: 7, Reason: "availability"}}, changes)
	assert.Equal(t, calendardata.StateReady, view.State(), "a streamed change refetches the view")
}

func TestClient_WatchChangesUnauthorized(t *testing.T) {
	srv := newTestServer(t)
	bus := events.NewBus()
	session := NewSession("expired", bus)
	client := NewClient(srv.URL, session, bus, srv.Client())

	err := client.WatchChanges(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, session.Authenticated())
}
