package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusRecruiting = "recruiting"
	CampaignStatusClosed     = "closed"
	CampaignStatusCompleted  = "completed"
)

// Valid state transitions: from -> []to. Status only moves forward.
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusRecruiting: {CampaignStatusClosed},
	CampaignStatusClosed:     {CampaignStatusCompleted},
	CampaignStatusCompleted:  {},
}

func IsValidCampaignTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

func IsValidCampaignStatus(s string) bool {
	_, ok := ValidCampaignTransitions[s]
	return ok
}

type Campaign struct {
	ID                   uuid.UUID `json:"id"`
	AdvertiserProfileID  uuid.UUID `json:"advertiser_profile_id"`
	Title                string    `json:"title"`
	RecruitmentStartDate string    `json:"recruitment_start_date"` // YYYY-MM-DD
	RecruitmentEndDate   string    `json:"recruitment_end_date"`   // YYYY-MM-DD
	MaxParticipants      int       `json:"max_participants"`
	Benefits             string    `json:"benefits"`
	Mission              string    `json:"mission"`
	StoreInfo            string    `json:"store_info"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CampaignWithAdvertiser embeds Campaign and adds advertiser info to avoid N+1 queries.
type CampaignWithAdvertiser struct {
	Campaign
	CompanyName        *string `json:"company_name,omitempty"`
	AdvertiserLocation *string `json:"advertiser_location,omitempty"`
	AdvertiserCategory *string `json:"advertiser_category,omitempty"`
}
