package models

import (
	"time"

	"github.com/google/uuid"
)

// Channel types
const (
	ChannelTypeNaver     = "naver"
	ChannelTypeYouTube   = "youtube"
	ChannelTypeInstagram = "instagram"
	ChannelTypeThreads   = "threads"
)

var ChannelTypes = []string{
	ChannelTypeNaver,
	ChannelTypeYouTube,
	ChannelTypeInstagram,
	ChannelTypeThreads,
}

func IsValidChannelType(t string) bool {
	for _, ct := range ChannelTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Channel verification statuses
const (
	ChannelVerificationPending  = "pending"
	ChannelVerificationVerified = "verified"
	ChannelVerificationFailed   = "failed"
)

type InfluencerChannel struct {
	ID                  uuid.UUID  `json:"id"`
	InfluencerProfileID uuid.UUID  `json:"influencer_profile_id"`
	ChannelType         string     `json:"channel_type"`
	ChannelName         string     `json:"channel_name"`
	ChannelURL          string     `json:"channel_url"`
	VerificationStatus  string     `json:"verification_status"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
