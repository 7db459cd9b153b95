package finder

import (
	"strings"
	"time"

	"github.com/together-as-one/internal/domain"
)

// Criteria - everything the predicate engine needs besides the records
type Criteria struct {
	Filter domain.FilterState
	Search string
	// Now is the wall-clock time in the service's local zone, used by "available now".
	Now time.Time
}

// Predicate decides whether a record passes one criterion.
type Predicate func(p *AnnotatedPoint) bool

// Predicates returns one predicate per active criterion. A record must pass all of them.
func Predicates(c Criteria) []Predicate {
	f := c.Filter
	var preds []Predicate

	if f.Area != nil {
		preds = append(preds, MatchArea(*f.Area))
	}
	if f.SubArea != nil {
		preds = append(preds, MatchSubArea(*f.SubArea))
	}
	if f.DistanceLimited() {
		preds = append(preds, MatchMaxDistance(float64(f.MaxDistance)))
	}
	if f.AvailableNow {
		preds = append(preds, MatchAvailableAt(c.Now))
	}
	if days := f.Days(); len(days) > 0 {
		preds = append(preds, MatchAnyDay(days))
	}
	if f.TimeSlot != nil {
		preds = append(preds, MatchTimeSlot(*f.TimeSlot))
	}
	if q := strings.TrimSpace(c.Search); q != "" {
		preds = append(preds, MatchSearch(q))
	}

	return preds
}

// Filter keeps the records passing every active criterion, in input order.
func Filter(points []AnnotatedPoint, c Criteria) []AnnotatedPoint {
	preds := Predicates(c)
	out := make([]AnnotatedPoint, 0, len(points))

next:
	for i := range points {
		for _, pred := range preds {
			if !pred(&points[i]) {
				continue next
			}
		}
		out = append(out, points[i])
	}
	return out
}

func MatchArea(area string) Predicate {
	return func(p *AnnotatedPoint) bool {
		return p.Area == area
	}
}

func MatchSubArea(subArea string) Predicate {
	return func(p *AnnotatedPoint) bool {
		return p.SubArea == subArea
	}
}

// MatchMaxDistance applies only once an origin is known; unreachable records fail.
func MatchMaxDistance(maxKm float64) Predicate {
	return func(p *AnnotatedPoint) bool {
		if _, known := p.ResolvedDistance(); !known {
			return true
		}
		d := p.FiniteDistance()
		return d != nil && *d <= maxKm
	}
}

// MatchAvailableAt passes records with a window covering now's weekday and hour.
func MatchAvailableAt(now time.Time) Predicate {
	day, hour := int(now.Weekday()), now.Hour()
	return func(p *AnnotatedPoint) bool {
		for _, w := range p.Availability {
			if w.Contains(day, hour) {
				return true
			}
		}
		return false
	}
}

// MatchAnyDay passes records open on at least one of the given weekdays.
func MatchAnyDay(days []int) Predicate {
	set := make(map[int]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return func(p *AnnotatedPoint) bool {
		for _, w := range p.Availability {
			if !w.Valid() {
				continue
			}
			if _, ok := set[w.Day]; ok {
				return true
			}
		}
		return false
	}
}

// MatchTimeSlot passes records with any window overlapping the slot's hours.
func MatchTimeSlot(slot domain.TimeSlot) Predicate {
	from, to, ok := slot.Hours()
	return func(p *AnnotatedPoint) bool {
		if !ok {
			return false
		}
		for _, w := range p.Availability {
			if w.Overlaps(from, to) {
				return true
			}
		}
		return false
	}
}

// MatchSearch - case-insensitive substring match on area, address or name.
func MatchSearch(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(p *AnnotatedPoint) bool {
		return strings.Contains(strings.ToLower(p.Area), q) ||
			strings.Contains(strings.ToLower(p.Address), q) ||
			strings.Contains(strings.ToLower(p.Name), q)
	}
}
