package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription - resident signed up for outage updates
type Subscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      *string   `json:"name,omitempty" db:"name"`
	Area      *string   `json:"area,omitempty" db:"area"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
