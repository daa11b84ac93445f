package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/influmatch/backend/internal/events"
	"github.com/influmatch/backend/internal/models"
	"github.com/influmatch/backend/internal/repositories"
)

// In-memory store fakes. Each mimics the corresponding repository closely
// enough for service behavior: ErrNotFound for misses, ErrDuplicate for
// unique-constraint violations, and value copies on reads so callers never
// share memory with the store.

type fakeCampaignStore struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]models.Campaign
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{campaigns: make(map[uuid.UUID]models.Campaign)}
}

func (f *fakeCampaignStore) Create(_ context.Context, c *models.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.campaigns[c.ID] = *c
	return nil
}

func (f *fakeCampaignStore) GetByID(_ context.Context, id uuid.UUID) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCampaignStore) GetByIDWithAdvertiser(ctx context.Context, id uuid.UUID) (*models.CampaignWithAdvertiser, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CampaignWithAdvertiser{Campaign: *c}, nil
}

func (f *fakeCampaignStore) Update(_ context.Context, c *models.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.campaigns[c.ID]; !ok {
		return repositories.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	f.campaigns[c.ID] = *c
	return nil
}

func (f *fakeCampaignStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	f.campaigns[id] = c
	return nil
}

func (f *fakeCampaignStore) List(_ context.Context, filter repositories.CampaignFilter) ([]models.CampaignWithAdvertiser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CampaignWithAdvertiser
	for _, c := range f.campaigns {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.AdvertiserProfileID != nil && c.AdvertiserProfileID != *filter.AdvertiserProfileID {
			continue
		}
		out = append(out, models.CampaignWithAdvertiser{Campaign: c})
	}
	return out, nil
}

func (f *fakeCampaignStore) ListRecruitingEndedBefore(_ context.Context, date string, limit int) ([]models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Campaign
	for _, c := range f.campaigns {
		if c.Status == models.CampaignStatusRecruiting && c.RecruitmentEndDate < date {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCampaignStore) ListClosedBefore(_ context.Context, cutoff string, limit int) ([]models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := time.Parse(time.RFC3339, cutoff)
	if err != nil {
		return nil, err
	}
	var out []models.Campaign
	for _, c := range f.campaigns {
		if c.Status == models.CampaignStatusClosed && c.UpdatedAt.Before(t) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeApplicationStore struct {
	mu           sync.Mutex
	applications map[uuid.UUID]models.Application
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[uuid.UUID]models.Application)}
}

func (f *fakeApplicationStore) Create(_ context.Context, a *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.applications {
		if existing.CampaignID == a.CampaignID && existing.InfluencerProfileID == a.InfluencerProfileID {
			return repositories.ErrDuplicate
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.applications[a.ID] = *a
	return nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (f *fakeApplicationStore) GetByCampaignAndInfluencer(_ context.Context, campaignID, influencerProfileID uuid.UUID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.CampaignID == campaignID && a.InfluencerProfileID == influencerProfileID {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	f.applications[id] = a
	return nil
}

func (f *fakeApplicationStore) CompleteSelectedByCampaign(_ context.Context, campaignID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, a := range f.applications {
		if a.CampaignID == campaignID && a.Status == models.ApplicationStatusSelected {
			a.Status = models.ApplicationStatusCompleted
			f.applications[id] = a
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationStore) List(_ context.Context, filter repositories.ApplicationFilter) ([]models.ApplicationWithCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ApplicationWithCampaign
	for _, a := range f.applications {
		if filter.CampaignID != nil && a.CampaignID != *filter.CampaignID {
			continue
		}
		if filter.InfluencerProfileID != nil && a.InfluencerProfileID != *filter.InfluencerProfileID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, models.ApplicationWithCampaign{Application: a})
	}
	return out, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeAdvertiserProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.AdvertiserProfile
}

func newFakeAdvertiserProfileStore() *fakeAdvertiserProfileStore {
	return &fakeAdvertiserProfileStore{profiles: make(map[uuid.UUID]models.AdvertiserProfile)}
}

func (f *fakeAdvertiserProfileStore) Create(_ context.Context, p *models.AdvertiserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.profiles {
		if existing.UserID == p.UserID {
			return repositories.ErrDuplicate
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.profiles[p.ID] = *p
	return nil
}

func (f *fakeAdvertiserProfileStore) GetByID(_ context.Context, id uuid.UUID) (*models.AdvertiserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (f *fakeAdvertiserProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeInfluencerStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.InfluencerProfile
	channels map[uuid.UUID]models.InfluencerChannel
}

func newFakeInfluencerStore() *fakeInfluencerStore {
	return &fakeInfluencerStore{
		profiles: make(map[uuid.UUID]models.InfluencerProfile),
		channels: make(map[uuid.UUID]models.InfluencerChannel),
	}
}

func (f *fakeInfluencerStore) CreateWithChannels(_ context.Context, p *models.InfluencerProfile, channels []models.InfluencerChannel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.profiles {
		if existing.UserID == p.UserID {
			return repositories.ErrDuplicate
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.profiles[p.ID] = *p
	for i := range channels {
		if channels[i].ID == uuid.Nil {
			channels[i].ID = uuid.New()
		}
		channels[i].InfluencerProfileID = p.ID
		f.channels[channels[i].ID] = channels[i]
	}
	return nil
}

func (f *fakeInfluencerStore) GetByID(_ context.Context, id uuid.UUID) (*models.InfluencerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (f *fakeInfluencerStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.InfluencerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInfluencerStore) ListChannels(_ context.Context, profileID uuid.UUID) ([]models.InfluencerChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.InfluencerChannel
	for _, ch := range f.channels {
		if ch.InfluencerProfileID == profileID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeInfluencerStore) ListPendingChannels(_ context.Context, limit int) ([]models.InfluencerChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.InfluencerChannel
	for _, ch := range f.channels {
		if ch.VerificationStatus == models.ChannelVerificationPending {
			out = append(out, ch)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeInfluencerStore) UpdateChannelVerification(_ context.Context, channelID uuid.UUID, status string, verifiedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[channelID]
	if !ok {
		return repositories.ErrNotFound
	}
	ch.VerificationStatus = status
	ch.VerifiedAt = verifiedAt
	f.channels[channelID] = ch
	return nil
}

type fakeAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (f *fakeAuditStore) Log(_ context.Context, entry models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditStore) GetByEntity(_ context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AuditLog
	for _, e := range f.entries {
		if e.EntityType == entityType && e.EntityID != nil && *e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAuditStore) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event(nil), f.events...)
}
