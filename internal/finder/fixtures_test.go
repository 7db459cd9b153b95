package finder_test

import (
	"math"
	"time"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/finder"
)

var origin = domain.Coordinates{Latitude: -26.7113, Longitude: 27.8378}

// north returns a point km kilometres due north of c.
func north(c domain.Coordinates, km float64) *domain.Coordinates {
	return &domain.Coordinates{
		Latitude:  c.Latitude + km/6371.0*180/math.Pi,
		Longitude: c.Longitude,
	}
}

func ptr[T any](v T) *T {
	return &v
}

// mondayAt returns Monday 19 October 2026 at hh:mm UTC.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, time.October, 19, hour, minute, 0, 0, time.UTC)
}

func threePoints() []domain.WaterPoint {
	return []domain.WaterPoint{
		{ID: "far", Name: "Ext 11 Borehole", Area: "Sebokeng", Address: "12 Moshoeshoe St", Location: north(origin, 5.0)},
		{ID: "unknown", Name: "Church Tank", Area: "Three Rivers", Address: "1 Riverside Rd"},
		{ID: "near", Name: "Shoprite Tank", Area: "Vanderbijlpark", Address: "5 Hertz Blvd", Location: north(origin, 1.0)},
	}
}

func idsOf(points []finder.AnnotatedPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.ID
	}
	return out
}
