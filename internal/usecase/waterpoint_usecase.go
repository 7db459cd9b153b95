package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	"github.com/together-as-one/internal/finder"
	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/usecase/dto"
)

// WaterPointUseCase runs one-shot searches over the water point listing
type WaterPointUseCase struct {
	loader *SourceLoader
	repo   repository.WaterPointRepository
	tz     *time.Location
	clock  func() time.Time
	logger *zap.Logger
}

// NewWaterPointUseCase создает новый экземпляр WaterPointUseCase
func NewWaterPointUseCase(
	loader *SourceLoader,
	repo repository.WaterPointRepository,
	tz *time.Location,
	logger *zap.Logger,
) *WaterPointUseCase {
	if tz == nil {
		tz = time.Local
	}
	return &WaterPointUseCase{
		loader: loader,
		repo:   repo,
		tz:     tz,
		clock:  time.Now,
		logger: logger,
	}
}

// WithClock replaces the time source (tests).
func (uc *WaterPointUseCase) WithClock(clock func() time.Time) *WaterPointUseCase {
	uc.clock = clock
	return uc
}

// Find annotates, filters, ranks and paginates the listing for one request.
func (uc *WaterPointUseCase) Find(ctx context.Context, req dto.FindWaterPointsRequest) (*dto.FindWaterPointsResponse, error) {
	user, err := pairCoordinates(req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}
	custom, err := pairCoordinates(req.CustomLat, req.CustomLng)
	if err != nil {
		return nil, err
	}

	filter, err := filterFromRequest(req)
	if err != nil {
		return nil, err
	}
	filter.CustomLocation = custom

	points, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock().In(uc.tz)
	result := finder.Run(points, finder.Query{
		Filter:       filter,
		Search:       req.Query,
		UserLocation: user,
		Now:          now,
	})

	perPage := finder.DefaultItemsPerPage
	if req.ViewportWidth > 0 {
		perPage = finder.ItemsPerPage(req.ViewportWidth)
	}
	page := finder.Paginate(result.Points, req.Page, perPage)

	uc.logger.Debug("Water points found",
		zap.Int("total", page.Total),
		zap.Int("page", page.Number),
		zap.String("origin", result.Origin.Kind.String()),
	)

	resp := &dto.FindWaterPointsResponse{
		Items:        toItems(page.Items),
		Origin:       toOriginDTO(result.Origin),
		Empty:        len(result.Points) == 0,
		Page:         page.Number,
		TotalPages:   page.TotalPages,
		Total:        page.Total,
		ItemsPerPage: page.ItemsPerPage,
		GeneratedAt:  now,
	}
	if user == nil {
		resp.Guidance = domain.GeolocationFailure(req.GeolocationError).Guidance()
	}
	return resp, nil
}

// GetByID возвращает точку без расстояния
func (uc *WaterPointUseCase) GetByID(ctx context.Context, id string) (*dto.WaterPointResponse, error) {
	wp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWaterPointResponse(*wp, nil)
	return &resp, nil
}

// ListAreas returns areas and their sub-areas sorted by name.
func (uc *WaterPointUseCase) ListAreas(ctx context.Context) ([]dto.AreaDTO, error) {
	points, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	subAreas := make(map[string]map[string]struct{})
	for _, p := range points {
		if p.Area == "" {
			continue
		}
		if subAreas[p.Area] == nil {
			subAreas[p.Area] = make(map[string]struct{})
		}
		if p.SubArea != "" {
			subAreas[p.Area][p.SubArea] = struct{}{}
		}
	}

	areas := make([]dto.AreaDTO, 0, len(subAreas))
	for area, subs := range subAreas {
		list := make([]string, 0, len(subs))
		for s := range subs {
			list = append(list, s)
		}
		sort.Strings(list)
		areas = append(areas, dto.AreaDTO{Area: area, SubAreas: list})
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].Area < areas[j].Area })

	return areas, nil
}

// pairCoordinates requires both halves of a coordinate pair or neither.
func pairCoordinates(lat, lng *float64) (*domain.Coordinates, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, errors.ErrInvalidCoordinates
	}
	c := domain.Coordinates{Latitude: *lat, Longitude: *lng}
	if !c.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}
	return &c, nil
}

func filterFromRequest(req dto.FindWaterPointsRequest) (domain.FilterState, error) {
	f := domain.DefaultFilterState()
	if req.MaxDistance != 0 {
		f.SetMaxDistance(req.MaxDistance)
	}
	f.AvailableNow = req.AvailableNow

	if req.Area != "" {
		area := req.Area
		f.SetArea(&area)
	}
	if req.SubArea != "" {
		sub := req.SubArea
		f.SetSubArea(&sub)
	}

	for _, d := range req.Days {
		if d < 0 || d > 6 {
			return f, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{"days": d})
		}
		if !f.AvailableDays[d] {
			f.ToggleDay(d)
		}
	}

	slot, ok := domain.ParseTimeSlot(req.TimeSlot)
	if !ok {
		return f, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{"time_slot": req.TimeSlot})
	}
	f.TimeSlot = slot

	return f, nil
}
