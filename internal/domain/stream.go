package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamWaterPointRegister = "stream:waterpoint:register"
)

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

// RegistrationEvent - a homeowner's request to share a borehole or tank
type RegistrationEvent struct {
	EventID      uuid.UUID            `json:"event_id"`
	OwnerName    string               `json:"owner_name"`
	Phone        string               `json:"phone"`
	Email        string               `json:"email,omitempty"`
	Name         string               `json:"name"`
	Type         WaterPointType       `json:"type"`
	Area         string               `json:"area"`
	SubArea      string               `json:"sub_area,omitempty"`
	Address      string               `json:"address"`
	Description  string               `json:"description,omitempty"`
	Location     *Coordinates         `json:"location,omitempty"`
	Availability []AvailabilityWindow `json:"availability"`
	SubmittedAt  time.Time            `json:"submitted_at"`
}

// ToWaterPoint converts the registration into a listable water point.
func (e *RegistrationEvent) ToWaterPoint() *WaterPoint {
	windows := make([]AvailabilityWindow, 0, len(e.Availability))
	for _, w := range e.Availability {
		if w.Valid() {
			windows = append(windows, w)
		}
	}

	return &WaterPoint{
		ID:             e.EventID.String(),
		Name:           e.Name,
		Type:           e.Type,
		Area:           e.Area,
		SubArea:        e.SubArea,
		Address:        e.Address,
		Description:    e.Description,
		Location:       e.Location,
		Availability:   windows,
		AvailableTimes: DescribeAvailability(windows),
	}
}
