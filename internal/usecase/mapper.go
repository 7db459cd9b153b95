package usecase

import (
	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/finder"
	"github.com/together-as-one/internal/pkg/utils"
	"github.com/together-as-one/internal/usecase/dto"
)

func toCoordinatesDTO(c *domain.Coordinates) *dto.CoordinatesDTO {
	if c == nil {
		return nil
	}
	return &dto.CoordinatesDTO{Lat: c.Latitude, Lng: c.Longitude}
}

func toCoordinates(c *dto.CoordinatesDTO) *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Latitude: c.Lat, Longitude: c.Lng}
}

func toWindowDTOs(windows []domain.AvailabilityWindow) []dto.AvailabilityWindowDTO {
	out := make([]dto.AvailabilityWindowDTO, 0, len(windows))
	for _, w := range windows {
		out = append(out, dto.AvailabilityWindowDTO{Day: w.Day, StartHour: w.StartHour, EndHour: w.EndHour})
	}
	return out
}

func toWindows(windows []dto.AvailabilityWindowDTO) []domain.AvailabilityWindow {
	out := make([]domain.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		out = append(out, domain.AvailabilityWindow{Day: w.Day, StartHour: w.StartHour, EndHour: w.EndHour})
	}
	return out
}

func toWaterPointResponse(wp domain.WaterPoint, distance *float64) dto.WaterPointResponse {
	times := wp.AvailableTimes
	if times == nil {
		times = []string{}
	}
	travel := utils.EstimateTravelTimes(distance)

	resp := dto.WaterPointResponse{
		ID:             wp.ID,
		Name:           wp.Name,
		Type:           string(wp.Type),
		Area:           wp.Area,
		SubArea:        wp.SubArea,
		Address:        wp.Address,
		Description:    wp.Description,
		Availability:   toWindowDTOs(wp.Availability),
		AvailableTimes: times,
		DistanceKm:     distance,
		WalkingTime:    travel.Walking,
		DrivingTime:    travel.Driving,
	}
	if wp.HasLocation() {
		resp.Location = toCoordinatesDTO(wp.Location)
	}
	return resp
}

// toItems maps a page of annotated points. Infinite distances become null.
func toItems(points []finder.AnnotatedPoint) []dto.WaterPointResponse {
	items := make([]dto.WaterPointResponse, 0, len(points))
	for _, p := range points {
		items = append(items, toWaterPointResponse(p.WaterPoint, p.FiniteDistance()))
	}
	return items
}

func toOriginDTO(o finder.Origin) *dto.OriginDTO {
	if !o.Known() {
		return nil
	}
	return &dto.OriginDTO{
		Kind: o.Kind.String(),
		Lat:  o.Point.Latitude,
		Lng:  o.Point.Longitude,
	}
}

func toFiltersDTO(f domain.FilterState) dto.FiltersDTO {
	var slot *string
	if f.TimeSlot != nil {
		s := string(*f.TimeSlot)
		slot = &s
	}
	return dto.FiltersDTO{
		MaxDistance:    f.MaxDistance,
		AvailableNow:   f.AvailableNow,
		Area:           f.Area,
		SubArea:        f.SubArea,
		Days:           f.Days(),
		TimeSlot:       slot,
		CustomLocation: toCoordinatesDTO(f.CustomLocation),
	}
}
