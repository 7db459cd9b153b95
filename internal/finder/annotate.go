package finder

import (
	"math"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/pkg/utils"
)

// OriginKind tells which location distances are measured from.
type OriginKind int

const (
	OriginNone OriginKind = iota
	OriginUser
	OriginCustom
)

func (k OriginKind) String() string {
	switch k {
	case OriginUser:
		return "user"
	case OriginCustom:
		return "custom"
	}
	return "none"
}

// Origin - point distances are measured from
type Origin struct {
	Kind  OriginKind
	Point domain.Coordinates
}

// Known reports whether distances can be computed at all.
func (o Origin) Known() bool {
	return o.Kind != OriginNone
}

// ResolveOrigin picks the custom location over the detected one.
// Locations with unusable coordinates are ignored.
func ResolveOrigin(user, custom *domain.Coordinates) Origin {
	if custom != nil && custom.Valid() {
		return Origin{Kind: OriginCustom, Point: *custom}
	}
	if user != nil && user.Valid() {
		return Origin{Kind: OriginUser, Point: *user}
	}
	return Origin{Kind: OriginNone}
}

// AnnotatedPoint - water point with distances attached by the pipeline.
// At most one of Distance (from the detected location) and CustomDistance
// (from the map-picked location) is set; both are nil when no origin is known.
type AnnotatedPoint struct {
	domain.WaterPoint
	Distance       *float64
	CustomDistance *float64
}

// ResolvedDistance returns the distance used for filtering and sorting.
// ok is false when no origin was known; d is +Inf for records without coordinates.
func (a AnnotatedPoint) ResolvedDistance() (d float64, ok bool) {
	if a.CustomDistance != nil {
		return *a.CustomDistance, true
	}
	if a.Distance != nil {
		return *a.Distance, true
	}
	return 0, false
}

// FiniteDistance returns the resolved distance only when it is a real number.
func (a AnnotatedPoint) FiniteDistance() *float64 {
	d, ok := a.ResolvedDistance()
	if !ok || !utils.IsFinite(d) {
		return nil
	}
	return &d
}

// Annotate attaches distances from origin to every record.
// Records without usable coordinates get +Inf once an origin is known.
func Annotate(points []domain.WaterPoint, origin Origin) []AnnotatedPoint {
	out := make([]AnnotatedPoint, len(points))
	for i := range points {
		out[i] = AnnotatedPoint{WaterPoint: points[i]}
		if !origin.Known() {
			continue
		}

		d := math.Inf(1)
		if points[i].HasLocation() {
			loc := points[i].Location
			d = utils.DistanceKm(origin.Point.Latitude, origin.Point.Longitude, loc.Latitude, loc.Longitude)
		}

		if origin.Kind == OriginCustom {
			out[i].CustomDistance = &d
		} else {
			out[i].Distance = &d
		}
	}
	return out
}
