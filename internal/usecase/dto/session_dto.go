package dto

import "time"

// CreateSessionRequest - запрос на создание сессии поиска
type CreateSessionRequest struct {
	ViewportWidth int             `json:"viewport_width" validate:"omitempty,min=0"`
	Location      *CoordinatesDTO `json:"location,omitempty"`
}

// UpdateFiltersRequest - discrete filter mutations; nil fields are left untouched.
// An empty area, sub-area or time slot clears that filter.
type UpdateFiltersRequest struct {
	MaxDistance  *int    `json:"max_distance,omitempty" validate:"omitempty,min=1,max=10"`
	AvailableNow *bool   `json:"available_now,omitempty"`
	Area         *string `json:"area,omitempty" validate:"omitempty,max=100"`
	SubArea      *string `json:"sub_area,omitempty" validate:"omitempty,max=100"`
	ToggleDay    *int    `json:"toggle_day,omitempty" validate:"omitempty,weekday"`
	TimeSlot     *string `json:"time_slot,omitempty" validate:"omitempty,timeslot"`
}

// SearchRequest - текст поиска
type SearchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// LocationRequest - detected location or the reason it could not be obtained
type LocationRequest struct {
	Location *CoordinatesDTO `json:"location,omitempty" validate:"required_without=Error"`
	Error    string          `json:"error,omitempty" validate:"omitempty,oneof=permission_denied position_unavailable timeout unsupported"`
}

// ViewportRequest - ширина окна клиента
type ViewportRequest struct {
	Width int `json:"width" validate:"min=0"`
}

// FiltersDTO - active filters of a session
type FiltersDTO struct {
	MaxDistance    int             `json:"max_distance"`
	AvailableNow   bool            `json:"available_now"`
	Area           *string         `json:"area"`
	SubArea        *string         `json:"sub_area"`
	Days           []int           `json:"days"`
	TimeSlot       *string         `json:"time_slot"`
	CustomLocation *CoordinatesDTO `json:"custom_location"`
}

// SessionResponse - snapshot of a finder session
type SessionResponse struct {
	ID            string               `json:"id"`
	State         string               `json:"state"`
	Error         string               `json:"error,omitempty"`
	Filters       FiltersDTO           `json:"filters"`
	Search        string               `json:"search"`
	PendingSearch string               `json:"pending_search"`
	Origin        *OriginDTO           `json:"origin"`
	Guidance      string               `json:"guidance,omitempty"`
	Items         []WaterPointResponse `json:"items"`
	Empty         bool                 `json:"empty"`
	Page          int                  `json:"page"`
	TotalPages    int                  `json:"total_pages"`
	Total         int                  `json:"total"`
	ItemsPerPage  int                  `json:"items_per_page"`
	UpdatedAt     *time.Time           `json:"updated_at,omitempty"`
}
