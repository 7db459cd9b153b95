package utils

import (
	"fmt"
	"math"
)

const (
	walkingSpeedKmh = 5.0
	drivingSpeedKmh = 40.0
)

// TravelTimes - display strings for estimated travel time. Nil when unknown.
type TravelTimes struct {
	Walking *string `json:"walking"`
	Driving *string `json:"driving"`
}

// EstimateTravelTimes converts a straight-line distance into walking and
// driving estimates. Unknown or infinite distances give empty estimates.
func EstimateTravelTimes(distanceKm *float64) TravelTimes {
	if distanceKm == nil || !IsFinite(*distanceKm) || *distanceKm < 0 {
		return TravelTimes{}
	}

	walking := FormatMinutes(travelMinutes(*distanceKm, walkingSpeedKmh))
	driving := FormatMinutes(travelMinutes(*distanceKm, drivingSpeedKmh))
	return TravelTimes{Walking: &walking, Driving: &driving}
}

func travelMinutes(distanceKm, speedKmh float64) int {
	return int(math.Round(distanceKm / speedKmh * 60))
}

// FormatMinutes renders "12 min", "1 hr 5 min", "2 hrs".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours := minutes / 60
	rest := minutes % 60
	unit := "hrs"
	if hours == 1 {
		unit = "hr"
	}
	if rest == 0 {
		return fmt.Sprintf("%d %s", hours, unit)
	}
	return fmt.Sprintf("%d %s %d min", hours, unit, rest)
}
