package models

import (
	"time"

	"github.com/google/uuid"
)

type AdvertiserProfile struct {
	ID                         uuid.UUID `json:"id"`
	UserID                     uuid.UUID `json:"user_id"`
	CompanyName                string    `json:"company_name"`
	Location                   *string   `json:"location,omitempty"`
	Category                   *string   `json:"category,omitempty"`
	BusinessRegistrationNumber string    `json:"business_registration_number"`
	ProfileCompleted           bool      `json:"profile_completed"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

type InfluencerProfile struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	BirthDate        string    `json:"birth_date"` // YYYY-MM-DD
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
