package dto

import "time"

// FindWaterPointsRequest - параметры одного прогона поиска точек
type FindWaterPointsRequest struct {
	Lat              *float64 `validate:"omitempty,min=-90,max=90"`
	Lng              *float64 `validate:"omitempty,min=-180,max=180"`
	CustomLat        *float64 `validate:"omitempty,min=-90,max=90"`
	CustomLng        *float64 `validate:"omitempty,min=-180,max=180"`
	MaxDistance      int      `validate:"omitempty,min=1,max=10"`
	AvailableNow     bool
	Area             string `validate:"omitempty,max=100"`
	SubArea          string `validate:"omitempty,max=100"`
	Days             []int  `validate:"omitempty,max=7,dive,weekday"`
	TimeSlot         string `validate:"timeslot"`
	Query            string `validate:"omitempty,max=200"`
	Page             int
	ViewportWidth    int    `validate:"omitempty,min=0"`
	GeolocationError string `validate:"omitempty,oneof=permission_denied position_unavailable timeout unsupported"`
}

// CoordinatesDTO - a point on the map
type CoordinatesDTO struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// AvailabilityWindowDTO - one weekly opening window
type AvailabilityWindowDTO struct {
	Day       int `json:"day" validate:"weekday"`
	StartHour int `json:"start_hour" validate:"min=0,max=23"`
	EndHour   int `json:"end_hour" validate:"min=1,max=24,gtfield=StartHour"`
}

// WaterPointResponse - water point as rendered in the result grid
type WaterPointResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Type           string                  `json:"type,omitempty"`
	Area           string                  `json:"area"`
	SubArea        string                  `json:"sub_area"`
	Address        string                  `json:"address"`
	Description    string                  `json:"description,omitempty"`
	Location       *CoordinatesDTO         `json:"location"`
	Availability   []AvailabilityWindowDTO `json:"availability"`
	AvailableTimes []string                `json:"available_times"`
	DistanceKm     *float64                `json:"distance_km"`
	WalkingTime    *string                 `json:"walking_time"`
	DrivingTime    *string                 `json:"driving_time"`
}

// OriginDTO - point distances were measured from
type OriginDTO struct {
	Kind string  `json:"kind"` // user | custom
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// FindWaterPointsResponse - one page of a pipeline run
type FindWaterPointsResponse struct {
	Items        []WaterPointResponse `json:"items"`
	Origin       *OriginDTO           `json:"origin"`
	Guidance     string               `json:"guidance,omitempty"`
	Empty        bool                 `json:"empty"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"total_pages"`
	Total        int                  `json:"total"`
	ItemsPerPage int                  `json:"items_per_page"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// AreaDTO - area with its known sub-areas, for the filter dropdowns
type AreaDTO struct {
	Area     string   `json:"area"`
	SubAreas []string `json:"sub_areas"`
}
