package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trainercal/internal/calendar"
	"trainercal/internal/calendardata"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(5)

	cellStyle = lipgloss.NewStyle().Width(5)

	hiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("237")).
			Width(5)

	todayStyle = lipgloss.NewStyle().Underline(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusColors = map[calendar.Status]lipgloss.Color{
		calendar.StatusAvailable:    lipgloss.Color("42"),
		calendar.StatusNotAvailable: lipgloss.Color("245"),
		calendar.StatusBlocked:      lipgloss.Color("196"),
		calendar.StatusTentative:    lipgloss.Color("214"),
		calendar.StatusBooked:       lipgloss.Color("33"),
	}
)

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func statusStyle(s calendar.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColors[s])
}

// RenderMonth draws the snapshot as a Sunday-first month grid followed by
// per-status counts and the requests awaiting approval. Days filtered out
// of the snapshot are shown as a dot.
func RenderMonth(s *calendardata.Snapshot, filter string) string {
	if s == nil {
		return "No calendar loaded.\n"
	}

	shown := make(map[string]calendar.CalendarDay, len(s.Days))
	for _, d := range s.Days {
		shown[d.DateString] = d
	}

	var b strings.Builder
	title := fmt.Sprintf("Trainer %d, %s %d", s.TrainerID, s.Month, s.Year)
	if filter != "" && filter != calendar.FilterAll {
		title += " (" + filter + ")"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	headers := make([]string, len(weekdayHeaders))
	for i, h := range weekdayHeaders {
		headers[i] = headerStyle.Render(h)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	dates := calendar.DaysInMonth(s.Year, s.Month)
	row := make([]string, 0, 7)
	for i := 0; i < calendar.DayOfWeek(dates[0]); i++ {
		row = append(row, cellStyle.Render(""))
	}
	for _, date := range dates {
		row = append(row, renderCell(date.Day(), shown, calendar.FormatDate(date)))
		if len(row) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			b.WriteString("\n")
			row = row[:0]
		}
	}
	if len(row) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderCounts(s.Counts))
	b.WriteString("\n")

	if len(s.AwaitingApproval) > 0 {
		b.WriteString("\nAwaiting approval:\n")
		for _, p := range s.AwaitingApproval {
			date := "no date"
			if p.RequestedDate != nil {
				date = *p.RequestedDate
			}
			fmt.Fprintf(&b, "  %-12s %s  %s\n", p.ID, date, p.Title)
		}
	}

	return b.String()
}

func renderCell(day int, shown map[string]calendar.CalendarDay, dateString string) string {
	d, ok := shown[dateString]
	if !ok {
		return hiddenStyle.Render(fmt.Sprintf("%2s", "·"))
	}

	label := fmt.Sprintf("%2d", day)
	style := statusStyle(d.Status)
	if d.IsToday {
		style = style.Inherit(todayStyle)
	}
	return cellStyle.Render(style.Render(label))
}

func renderCounts(counts calendar.FilterCounts) string {
	parts := []string{fmt.Sprintf("all %d", counts[calendar.FilterAll])}
	for _, s := range calendar.Statuses {
		parts = append(parts, statusStyle(s).Render(fmt.Sprintf("%s %d", s, counts[string(s)])))
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}
