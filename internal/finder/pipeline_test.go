package finder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/finder"
)

func TestRun_UnlimitedDistance(t *testing.T) {
	res := finder.Run(threePoints(), finder.Query{
		Filter:       domain.DefaultFilterState(),
		UserLocation: &origin,
	})

	require.Len(t, res.Points, 3)
	assert.Equal(t, finder.OriginUser, res.Origin.Kind)
	assert.Equal(t, []string{"near", "far", "unknown"}, idsOf(res.Points))
	assert.InDelta(t, 1.0, *res.Points[0].Distance, 1e-6)
	assert.InDelta(t, 5.0, *res.Points[1].Distance, 1e-6)
	assert.True(t, math.IsInf(*res.Points[2].Distance, 1))
}

func TestRun_MaxDistanceThree(t *testing.T) {
	f := domain.DefaultFilterState()
	f.SetMaxDistance(3)

	res := finder.Run(threePoints(), finder.Query{Filter: f, UserLocation: &origin})
	assert.Equal(t, []string{"near"}, idsOf(res.Points))
}

func TestRun_CustomLocationTakesPrecedence(t *testing.T) {
	f := domain.DefaultFilterState()
	// 6 km north of the user, i.e. 1 km past "far"
	f.CustomLocation = north(origin, 6.0)
	f.SetMaxDistance(2)

	res := finder.Run(threePoints(), finder.Query{Filter: f, UserLocation: &origin})
	assert.Equal(t, finder.OriginCustom, res.Origin.Kind)
	require.Equal(t, []string{"far"}, idsOf(res.Points))
	assert.Nil(t, res.Points[0].Distance)
	assert.InDelta(t, 1.0, *res.Points[0].CustomDistance, 1e-6)
}

func TestRun_EmptySource(t *testing.T) {
	res := finder.Run(nil, finder.Query{Filter: domain.DefaultFilterState(), UserLocation: &origin})
	assert.Empty(t, res.Points)
}

func TestRun_AvailableNowScenario(t *testing.T) {
	points := []domain.WaterPoint{{
		ID:           "mon",
		Availability: []domain.AvailabilityWindow{{Day: 1, StartHour: 8, EndHour: 10}},
	}}
	f := domain.DefaultFilterState()
	f.AvailableNow = true

	assert.Len(t, finder.Run(points, finder.Query{Filter: f, Now: mondayAt(8, 30)}).Points, 1)
	assert.Empty(t, finder.Run(points, finder.Query{Filter: f, Now: mondayAt(11, 0)}).Points)
}
