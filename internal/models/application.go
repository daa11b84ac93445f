package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusSelected  = "selected"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusCompleted = "completed"
)

// Valid state transitions: from -> []to. Advertisers decide pending
// applications; selected ones are completed by the batch worker once the
// campaign itself completes.
var ValidApplicationTransitions = map[string][]string{
	ApplicationStatusPending:   {ApplicationStatusSelected, ApplicationStatusRejected},
	ApplicationStatusSelected:  {ApplicationStatusCompleted},
	ApplicationStatusRejected:  {},
	ApplicationStatusCompleted: {},
}

func IsValidApplicationTransition(from, to string) bool {
	allowed, ok := ValidApplicationTransitions[from]
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

// IsDecisionStatus reports whether s is a status an advertiser may set
// through the API.
func IsDecisionStatus(s string) bool {
	return s == ApplicationStatusSelected || s == ApplicationStatusRejected
}

const MaxApplicationMessageLen = 500

type Application struct {
	ID                  uuid.UUID `json:"id"`
	CampaignID          uuid.UUID `json:"campaign_id"`
	InfluencerProfileID uuid.UUID `json:"influencer_profile_id"`
	Message             string    `json:"message"`
	PlannedVisitDate    string    `json:"planned_visit_date"` // YYYY-MM-DD
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ApplicationWithCampaign embeds Application and adds campaign info for
// influencer-facing listings.
type ApplicationWithCampaign struct {
	Application
	CampaignTitle  *string `json:"campaign_title,omitempty"`
	CampaignStatus *string `json:"campaign_status,omitempty"`
}
