package finder

import (
	"time"

	"github.com/together-as-one/internal/domain"
)

// Query - inputs of one pipeline run. The custom location lives in Filter.
type Query struct {
	Filter       domain.FilterState
	Search       string
	UserLocation *domain.Coordinates
	Now          time.Time
}

// Result - filtered records ordered for display
type Result struct {
	Origin Origin
	Points []AnnotatedPoint
}

// Run annotates, filters and ranks records. Pagination is left to the caller.
func Run(points []domain.WaterPoint, q Query) Result {
	origin := ResolveOrigin(q.UserLocation, q.Filter.CustomLocation)
	annotated := Annotate(points, origin)
	filtered := Filter(annotated, Criteria{
		Filter: q.Filter,
		Search: q.Search,
		Now:    q.Now,
	})

	return Result{
		Origin: origin,
		Points: SortByDistance(filtered, origin),
	}
}
