package utils

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	// rounding can push a just past 1 for antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// DistanceKm - great-circle distance that never yields NaN.
// Any non-finite coordinate gives +Inf. Numeric strings are coerced
// when records are decoded (CoerceFloat), not here.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	for _, v := range [...]float64{lat1, lon1, lat2, lon2} {
		if !IsFinite(v) {
			return math.Inf(1)
		}
	}
	return HaversineDistance(lat1, lon1, lat2, lon2)
}

// CoerceFloat converts numbers and numeric strings to a finite float64.
func CoerceFloat(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		v = s
	}
	if _, ok := v.(bool); ok {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !IsFinite(f) {
		return 0, false
	}
	return f, true
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return IsFinite(lat) && IsFinite(lon) &&
		lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
