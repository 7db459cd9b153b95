package dto

// RegistrationRequest - homeowner offering a borehole or tank to neighbours
type RegistrationRequest struct {
	OwnerName    string                  `json:"owner_name" validate:"required,min=2,max=100"`
	Phone        string                  `json:"phone" validate:"required,min=7,max=20"`
	Email        string                  `json:"email,omitempty" validate:"omitempty,email"`
	Name         string                  `json:"name" validate:"required,min=2,max=150"`
	Type         string                  `json:"type" validate:"required,oneof=borehole tank community"`
	Area         string                  `json:"area" validate:"required,max=100"`
	SubArea      string                  `json:"sub_area,omitempty" validate:"omitempty,max=100"`
	Address      string                  `json:"address" validate:"required,max=250"`
	Description  string                  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Location     *CoordinatesDTO         `json:"location,omitempty"`
	Availability []AvailabilityWindowDTO `json:"availability" validate:"required,min=1,max=21,dive"`
}

// RegistrationResponse - accepted registration awaiting processing
type RegistrationResponse struct {
	EventID  string `json:"event_id"`
	StreamID string `json:"stream_id"`
	Status   string `json:"status"`
}

// SubscriptionRequest - resident signing up for outage updates
type SubscriptionRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=100"`
	Area  string `json:"area,omitempty" validate:"omitempty,max=100"`
}

// SubscriptionResponse - stored subscription
type SubscriptionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
