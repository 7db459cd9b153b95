package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	// Vanderbijlpark -> Vereeniging
	d := DistanceKm(-26.7113, 27.8378, -26.6731, 27.9261)
	assert.InDelta(t, 9.7, d, 0.3)

	t.Run("symmetric", func(t *testing.T) {
		points := [][2]float64{
			{-26.7113, 27.8378},
			{-26.6731, 27.9261},
			{51.5074, -0.1278},
			{-33.9249, 18.4241},
			{0, 0},
		}
		for _, a := range points {
			for _, b := range points {
				assert.Equal(t, DistanceKm(a[0], a[1], b[0], b[1]), DistanceKm(b[0], b[1], a[0], a[1]))
			}
			assert.Equal(t, 0.0, DistanceKm(a[0], a[1], a[0], a[1]))
		}
	})

	t.Run("antipodal points", func(t *testing.T) {
		halfCircumference := math.Pi * earthRadiusKm
		pairs := [][4]float64{
			{18.83885183633153, 158.58327169620446, -18.83885183633153, -21.416728303795537},
			{0, 0, 0, 180},
			{90, 0, -90, 0},
			{-26.7113, 27.8378, 26.7113, -152.1622},
		}
		for _, p := range pairs {
			ab := DistanceKm(p[0], p[1], p[2], p[3])
			ba := DistanceKm(p[2], p[3], p[0], p[1])
			assert.False(t, math.IsNaN(ab), "NaN for %v", p)
			assert.Equal(t, ab, ba)
			assert.InDelta(t, halfCircumference, ab, 0.1)
		}
	})

	t.Run("non-finite inputs give infinity", func(t *testing.T) {
		cases := [][4]float64{
			{math.NaN(), 0, 0, 0},
			{0, math.Inf(1), 0, 0},
			{0, 0, math.Inf(-1), 0},
			{0, 0, 0, math.NaN()},
		}
		for _, c := range cases {
			got := DistanceKm(c[0], c[1], c[2], c[3])
			assert.True(t, math.IsInf(got, 1))
		}
	})
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"float", 1.5, 1.5, true},
		{"int", 3, 3, true},
		{"numeric string", " -26.5 ", -26.5, true},
		{"json number", json.Number("27.25"), 27.25, true},
		{"empty string", "", 0, false},
		{"garbage", "abc", 0, false},
		{"nil", nil, 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf string", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(-26.7, 27.8))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -181))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
}
