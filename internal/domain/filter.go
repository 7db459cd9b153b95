package domain

import "sort"

// MaxDistanceUnlimited - slider value meaning "no distance limit"
const MaxDistanceUnlimited = 10

const minMaxDistance = 1

// TimeSlot - part of the day used by the time-of-day filter
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

// Hours returns the first and last hour (inclusive) covered by the slot.
func (s TimeSlot) Hours() (from, to int, ok bool) {
	switch s {
	case TimeSlotMorning:
		return 6, 11, true
	case TimeSlotAfternoon:
		return 12, 17, true
	case TimeSlotEvening:
		return 18, 23, true
	}
	return 0, 0, false
}

// ParseTimeSlot maps user input to a slot; empty input means no slot.
func ParseTimeSlot(s string) (*TimeSlot, bool) {
	if s == "" {
		return nil, true
	}
	slot := TimeSlot(s)
	if _, _, ok := slot.Hours(); !ok {
		return nil, false
	}
	return &slot, true
}

// FilterState - active criteria of the finder. Zero-valued criteria impose
// no constraint.
type FilterState struct {
	MaxDistance    int          `json:"maxDistance"`
	AvailableNow   bool         `json:"availableNow"`
	Area           *string      `json:"area"`
	SubArea        *string      `json:"subArea"`
	AvailableDays  map[int]bool `json:"-"`
	TimeSlot       *TimeSlot    `json:"timeSlot"`
	CustomLocation *Coordinates `json:"customLocation"`
}

// DefaultFilterState returns the state a fresh finder starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		MaxDistance:   MaxDistanceUnlimited,
		AvailableDays: make(map[int]bool),
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (f FilterState) Clone() FilterState {
	out := f
	out.AvailableDays = make(map[int]bool, len(f.AvailableDays))
	for d, on := range f.AvailableDays {
		if on {
			out.AvailableDays[d] = true
		}
	}
	if f.Area != nil {
		v := *f.Area
		out.Area = &v
	}
	if f.SubArea != nil {
		v := *f.SubArea
		out.SubArea = &v
	}
	if f.TimeSlot != nil {
		v := *f.TimeSlot
		out.TimeSlot = &v
	}
	if f.CustomLocation != nil {
		v := *f.CustomLocation
		out.CustomLocation = &v
	}
	return out
}

// SetArea selects a new area. The sub-area always belongs to an area, so it is cleared.
func (f *FilterState) SetArea(area *string) {
	if area != nil && *area == "" {
		area = nil
	}
	f.Area = area
	f.SubArea = nil
}

func (f *FilterState) SetSubArea(subArea *string) {
	if subArea != nil && *subArea == "" {
		subArea = nil
	}
	f.SubArea = subArea
}

// SetMaxDistance clamps the value into the slider range.
func (f *FilterState) SetMaxDistance(km int) {
	switch {
	case km < minMaxDistance:
		km = minMaxDistance
	case km > MaxDistanceUnlimited:
		km = MaxDistanceUnlimited
	}
	f.MaxDistance = km
}

// ToggleDay flips membership of a weekday; out-of-range days are ignored.
func (f *FilterState) ToggleDay(day int) {
	if day < 0 || day > 6 {
		return
	}
	if f.AvailableDays == nil {
		f.AvailableDays = make(map[int]bool)
	}
	if f.AvailableDays[day] {
		delete(f.AvailableDays, day)
		return
	}
	f.AvailableDays[day] = true
}

// Days returns the selected weekdays in ascending order.
func (f FilterState) Days() []int {
	days := make([]int, 0, len(f.AvailableDays))
	for d, on := range f.AvailableDays {
		if on {
			days = append(days, d)
		}
	}
	sort.Ints(days)
	return days
}

// DistanceLimited reports whether the max-distance criterion is active.
func (f FilterState) DistanceLimited() bool {
	return f.MaxDistance > 0 && f.MaxDistance < MaxDistanceUnlimited
}
