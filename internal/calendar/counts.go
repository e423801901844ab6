package calendar

const FilterAll = "all"

// FilterCounts maps "all" and every status to the number of matching days.
type FilterCounts map[string]int

func CountByStatus(days []CalendarDay) FilterCounts {
	counts := FilterCounts{FilterAll: len(days)}
	for _, s := range Statuses {
		counts[string(s)] = 0
	}
	for _, d := range days {
		counts[string(d.Status)]++
	}
	return counts
}

// FilterDays keeps the days matching filter. "all" or an empty filter
// keeps every day.
func FilterDays(days []CalendarDay, filter string) []CalendarDay {
	if filter == "" || filter == FilterAll {
		return days
	}

	out := make([]CalendarDay, 0, len(days))
	for _, d := range days {
		if string(d.Status) == filter {
			out = append(out, d)
		}
	}
	return out
}

func ValidFilter(filter string) bool {
	return filter == "" || filter == FilterAll || Status(filter).Valid()
}
