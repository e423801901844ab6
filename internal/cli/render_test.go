package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trainercal/internal/calendar"
	"trainercal/internal/calendardata"
)

func strPtr(s string) *string { return &s }

func marchSnapshot() *calendardata.Snapshot {
	days := calendar.BuildMonth(2024, time.March, []calendar.Booking{
		{ID: "request-2", Kind: "request", Title: "SQL", Status: "pending", RequestedDate: strPtr("2024-03-06")},
		{ID: "request-1", Kind: "request", Title: "Go basics", Status: "approved", RequestedDate: strPtr("2024-03-05")},
	}, []calendar.Availability{
		{ID: 1, TrainerID: 7, Date: "2024-03-04", Status: "available"},
	}, []int{0})

	return &calendardata.Snapshot{
		TrainerID: 7,
		Year:      2024,
		Month:     time.March,
		Days:      days,
		Counts:    calendar.CountByStatus(days),
		AwaitingApproval: []calendar.Booking{
			{ID: "request-2", Kind: "request", Title: "SQL", Status: "pending", RequestedDate: strPtr("2024-03-06")},
		},
	}
}

func TestRenderMonth(t *testing.T) {
	out := RenderMonth(marchSnapshot(), calendar.FilterAll)

	assert.Contains(t, out, "Trainer 7, March 2024")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "all 31")
	assert.Contains(t, out, "blocked 5")
	assert.Contains(t, out, "tentative 1")
	assert.Contains(t, out, "available 1")
	assert.Contains(t, out, "Awaiting approval:")
	assert.Contains(t, out, "request-2")
	assert.Contains(t, out, "2024-03-06  SQL")
	assert.NotContains(t, out, "·")
}

func TestRenderMonth_Filtered(t *testing.T) {
	s := marchSnapshot().Filtered(string(calendar.StatusBlocked))
	out := RenderMonth(&s, string(calendar.StatusBlocked))

	assert.Contains(t, out, "Trainer 7, March 2024 (blocked)")
	assert.Equal(t, 26, strings.Count(out, "·"))
	assert.Contains(t, out, "all 31")
}

func TestRenderMonth_Nil(t *testing.T) {
	assert.Equal(t, "No calendar loaded.\n", RenderMonth(nil, calendar.FilterAll))
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"names", "sun, Sat", []int{0, 6}, false},
		{"numbers", "1,3", []int{1, 3}, false},
		{"none clears", "none", []int{}, false},
		{"empty clears", "", []int{}, false},
		{"out of range", "7", nil, true},
		{"unknown name", "someday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWeekdays(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatWeekdays(t *testing.T) {
	assert.Equal(t, "none", formatWeekdays(nil))
	assert.Equal(t, "Sun,Wed,Sat", formatWeekdays([]int{6, 0, 3, 0}))
}
