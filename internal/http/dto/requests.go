package dto

type SignupRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name" validate:"required,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role     string  `json:"role" validate:"required,oneof=advertiser influencer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profiles

type AdvertiserOnboardingRequest struct {
	CompanyName                string  `json:"company_name" validate:"required,max=200"`
	Location                   *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Category                   *string `json:"category,omitempty" validate:"omitempty,max=100"`
	BusinessRegistrationNumber string  `json:"business_registration_number" validate:"required,max=30"`
}

type ChannelRequest struct {
	ChannelType string `json:"channel_type" validate:"required"`
	ChannelName string `json:"channel_name" validate:"required,max=100"`
	ChannelURL  string `json:"channel_url" validate:"required,url"`
}

type InfluencerOnboardingRequest struct {
	BirthDate string           `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Channels  []ChannelRequest `json:"channels" validate:"required,min=1,dive"`
}

// Campaigns

type CreateCampaignRequest struct {
	Title                string `json:"title" validate:"required,max=200"`
	RecruitmentStartDate string `json:"recruitment_start_date" validate:"required,datetime=2006-01-02"`
	RecruitmentEndDate   string `json:"recruitment_end_date" validate:"required,datetime=2006-01-02"`
	MaxParticipants      int    `json:"max_participants" validate:"required,gt=0,lte=1000"`
	Benefits             string `json:"benefits" validate:"required"`
	Mission              string `json:"mission" validate:"required"`
	StoreInfo            string `json:"store_info" validate:"required"`
}

type UpdateCampaignRequest struct {
	Title                *string `json:"title,omitempty" validate:"omitempty,max=200"`
	RecruitmentStartDate *string `json:"recruitment_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RecruitmentEndDate   *string `json:"recruitment_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaxParticipants      *int    `json:"max_participants,omitempty" validate:"omitempty,gt=0,lte=1000"`
	Benefits             *string `json:"benefits,omitempty"`
	Mission              *string `json:"mission,omitempty"`
	StoreInfo            *string `json:"store_info,omitempty"`
	Status               *string `json:"status,omitempty"`
}

// Applications

type ApplyRequest struct {
	CampaignID       string `json:"campaign_id" validate:"required,uuid4"`
	Message          string `json:"message" validate:"required,max=500"`
	PlannedVisitDate string `json:"planned_visit_date" validate:"required,datetime=2006-01-02"`
}

type DecideApplicationRequest struct {
	CampaignID string `json:"campaign_id" validate:"required,uuid4"`
	Status     string `json:"status" validate:"required,oneof=selected rejected"`
}
