package cli

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"trainercal/internal/apiclient"
	"trainercal/internal/events"
)

type Context struct {
	Client *apiclient.Client
	Bus    *events.Bus
	Out    io.Writer
	Err    io.Writer
}

// NewContext builds a client for baseURL authenticated with token.
func NewContext(baseURL, token string, httpClient *http.Client, out, errOut io.Writer) *Context {
	bus := events.NewBus()
	return &Context{
		Client: apiclient.NewClient(baseURL, apiclient.NewSession(token, bus), bus, httpClient),
		Bus:    bus,
		Out:    out,
		Err:    errOut,
	}
}

// WatchSession reports a lost session on Err until the returned func is
// called.
func (c *Context) WatchSession() func() {
	return events.Subscribe(c.Bus, func(e events.LoggedOut) {
		fmt.Fprintf(c.Err, "Logged out: %s. Set TRAINERCAL_TOKEN to a fresh token.\n", e.Reason)
	})
}

// parseWeekdays reads a comma separated list of weekday names or numbers
// (0=Sunday). "none" yields an empty list.
func parseWeekdays(s string) ([]int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return []int{}, nil
	}

	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	var weekdays []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, num)
	}

	return weekdays, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
