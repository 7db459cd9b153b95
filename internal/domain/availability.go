package domain

import (
	"fmt"
	"sort"
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DescribeAvailability builds display strings such as "Monday: 08:00 - 10:00".
// Display only; filtering never reads these.
func DescribeAvailability(windows []AvailabilityWindow) []string {
	sorted := make([]AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		if w.Valid() {
			sorted = append(sorted, w)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].StartHour < sorted[j].StartHour
	})

	out := make([]string, 0, len(sorted))
	for _, w := range sorted {
		out = append(out, fmt.Sprintf("%s: %02d:00 - %02d:00", weekdayNames[w.Day], w.StartHour, w.EndHour))
	}
	return out
}
