package finder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/finder"
)

func availabilityPoints() []finder.AnnotatedPoint {
	return []finder.AnnotatedPoint{
		{WaterPoint: domain.WaterPoint{ID: "mon-morning", Availability: []domain.AvailabilityWindow{{Day: 1, StartHour: 8, EndHour: 10}}}},
		{WaterPoint: domain.WaterPoint{ID: "sat-evening", Availability: []domain.AvailabilityWindow{{Day: 6, StartHour: 17, EndHour: 20}}}},
		{WaterPoint: domain.WaterPoint{ID: "split-tue", Availability: []domain.AvailabilityWindow{
			{Day: 2, StartHour: 5, EndHour: 6},
			{Day: 2, StartHour: 13, EndHour: 15},
		}}},
		{WaterPoint: domain.WaterPoint{ID: "no-availability"}},
		{WaterPoint: domain.WaterPoint{ID: "broken-window", Availability: []domain.AvailabilityWindow{{Day: 9, StartHour: 8, EndHour: 10}}}},
	}
}

func TestFilter_NoCriteriaKeepsEverything(t *testing.T) {
	points := availabilityPoints()
	got := finder.Filter(points, finder.Criteria{Filter: domain.DefaultFilterState()})
	assert.Equal(t, points, got)
}

func TestFilter_AreaAndSubArea(t *testing.T) {
	points := []finder.AnnotatedPoint{
		{WaterPoint: domain.WaterPoint{ID: "a", Area: "Sebokeng", SubArea: "Zone 11"}},
		{WaterPoint: domain.WaterPoint{ID: "b", Area: "Sebokeng", SubArea: "Zone 12"}},
		{WaterPoint: domain.WaterPoint{ID: "c", Area: "Vanderbijlpark", SubArea: "SW5"}},
	}

	f := domain.DefaultFilterState()
	f.SetArea(ptr("Sebokeng"))
	assert.Equal(t, []string{"a", "b"}, idsOf(finder.Filter(points, finder.Criteria{Filter: f})))

	f.SetSubArea(ptr("Zone 12"))
	assert.Equal(t, []string{"b"}, idsOf(finder.Filter(points, finder.Criteria{Filter: f})))

	t.Run("area match is exact", func(t *testing.T) {
		f := domain.DefaultFilterState()
		f.SetArea(ptr("sebokeng"))
		assert.Empty(t, finder.Filter(points, finder.Criteria{Filter: f}))
	})
}

func TestFilter_AvailableNow(t *testing.T) {
	points := availabilityPoints()
	f := domain.DefaultFilterState()
	f.AvailableNow = true

	assert.Equal(t, []string{"mon-morning"}, idsOf(finder.Filter(points, finder.Criteria{Filter: f, Now: mondayAt(8, 30)})))
	assert.Empty(t, finder.Filter(points, finder.Criteria{Filter: f, Now: mondayAt(11, 0)}))
	assert.Empty(t, finder.Filter(points, finder.Criteria{Filter: f, Now: mondayAt(10, 0)}), "end hour is exclusive")
}

func TestFilter_AvailableDaysIsAnyOf(t *testing.T) {
	points := availabilityPoints()
	f := domain.DefaultFilterState()
	f.ToggleDay(1)
	f.ToggleDay(6)

	got := finder.Filter(points, finder.Criteria{Filter: f})
	assert.Equal(t, []string{"mon-morning", "sat-evening"}, idsOf(got))

	f.ToggleDay(6)
	f.ToggleDay(2)
	got = finder.Filter(points, finder.Criteria{Filter: f})
	assert.Equal(t, []string{"mon-morning", "split-tue"}, idsOf(got))
}

func TestFilter_TimeSlot(t *testing.T) {
	points := availabilityPoints()

	tests := []struct {
		slot domain.TimeSlot
		want []string
	}{
		{domain.TimeSlotMorning, []string{"mon-morning"}},
		{domain.TimeSlotAfternoon, []string{"sat-evening", "split-tue"}},
		{domain.TimeSlotEvening, []string{"sat-evening"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			f := domain.DefaultFilterState()
			f.TimeSlot = ptr(tt.slot)
			assert.Equal(t, tt.want, idsOf(finder.Filter(points, finder.Criteria{Filter: f})))
		})
	}
}

func TestFilter_Search(t *testing.T) {
	points := []finder.AnnotatedPoint{
		{WaterPoint: domain.WaterPoint{ID: "rivers", Area: "Three Rivers", Name: "Church Tank", Address: "1 Main Rd"}},
		{WaterPoint: domain.WaterPoint{ID: "sebokeng", Area: "Sebokeng", Name: "Ext 11 Borehole", Address: "12 Moshoeshoe St"}},
		{WaterPoint: domain.WaterPoint{ID: "by-address", Area: "Vereeniging", Name: "Tank", Address: "8 River Road"}},
		{WaterPoint: domain.WaterPoint{ID: "by-name", Area: "Vanderbijlpark", Name: "Riverside Mall", Address: "Hertz Blvd"}},
	}

	got := finder.Filter(points, finder.Criteria{Filter: domain.DefaultFilterState(), Search: "river"})
	assert.Equal(t, []string{"rivers", "by-address", "by-name"}, idsOf(got))

	got = finder.Filter(points, finder.Criteria{Filter: domain.DefaultFilterState(), Search: "  RIVERS "})
	assert.Equal(t, []string{"rivers"}, idsOf(got))

	got = finder.Filter(points, finder.Criteria{Filter: domain.DefaultFilterState(), Search: "   "})
	assert.Len(t, got, 4)
}

func TestFilter_MaxDistance(t *testing.T) {
	annotated := finder.Annotate(threePoints(), finder.ResolveOrigin(&origin, nil))

	f := domain.DefaultFilterState()
	assert.Len(t, finder.Filter(annotated, finder.Criteria{Filter: f}), 3, "10 means unlimited")

	f.SetMaxDistance(3)
	assert.Equal(t, []string{"near"}, idsOf(finder.Filter(annotated, finder.Criteria{Filter: f})))

	f.SetMaxDistance(6)
	assert.Equal(t, []string{"far", "near"}, idsOf(finder.Filter(annotated, finder.Criteria{Filter: f})))

	t.Run("no origin means no distance constraint", func(t *testing.T) {
		plain := finder.Annotate(threePoints(), finder.Origin{})
		f := domain.DefaultFilterState()
		f.SetMaxDistance(1)
		assert.Len(t, finder.Filter(plain, finder.Criteria{Filter: f}), 3)
	})
}

func TestFilter_CombinesWithAnd(t *testing.T) {
	points := []finder.AnnotatedPoint{
		{WaterPoint: domain.WaterPoint{ID: "match", Area: "Sebokeng", Name: "Zone 7 Tank",
			Availability: []domain.AvailabilityWindow{{Day: 1, StartHour: 6, EndHour: 9}}}},
		{WaterPoint: domain.WaterPoint{ID: "wrong-day", Area: "Sebokeng", Name: "Zone 7 Borehole",
			Availability: []domain.AvailabilityWindow{{Day: 3, StartHour: 6, EndHour: 9}}}},
		{WaterPoint: domain.WaterPoint{ID: "wrong-area", Area: "Vereeniging", Name: "Zone 7 Tap",
			Availability: []domain.AvailabilityWindow{{Day: 1, StartHour: 6, EndHour: 9}}}},
	}

	f := domain.DefaultFilterState()
	f.SetArea(ptr("Sebokeng"))
	f.ToggleDay(1)
	f.TimeSlot = ptr(domain.TimeSlotMorning)

	got := finder.Filter(points, finder.Criteria{Filter: f, Search: "zone 7"})
	assert.Equal(t, []string{"match"}, idsOf(got))
}

func TestFilter_Idempotent(t *testing.T) {
	annotated := finder.Annotate(threePoints(), finder.ResolveOrigin(&origin, nil))
	annotated = append(annotated, availabilityPoints()...)

	filters := []finder.Criteria{
		{Filter: domain.DefaultFilterState()},
		{Filter: domain.FilterState{MaxDistance: 3}},
		{Filter: domain.FilterState{MaxDistance: 10, AvailableNow: true}, Now: mondayAt(9, 0)},
		{Filter: domain.FilterState{MaxDistance: 10, AvailableDays: map[int]bool{2: true}}},
		{Filter: domain.FilterState{MaxDistance: 10}, Search: "tank"},
	}

	for _, c := range filters {
		once := finder.Filter(annotated, c)
		twice := finder.Filter(once, c)
		assert.Equal(t, once, twice)
	}
}

func TestFilter_MissingAvailabilityFailsAvailabilityCriteria(t *testing.T) {
	points := []finder.AnnotatedPoint{{WaterPoint: domain.WaterPoint{ID: "none"}}}

	for _, f := range []domain.FilterState{
		{MaxDistance: 10, AvailableNow: true},
		{MaxDistance: 10, AvailableDays: map[int]bool{1: true}},
		{MaxDistance: 10, TimeSlot: ptr(domain.TimeSlotMorning)},
	} {
		assert.Empty(t, finder.Filter(points, finder.Criteria{Filter: f, Now: mondayAt(8, 0)}))
	}
}
