package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InfluencerRepo struct {
	pool *pgxpool.Pool
}

func NewInfluencerRepo(pool *pgxpool.Pool) *InfluencerRepo {
	return &InfluencerRepo{pool: pool}
}

// CreateWithChannels inserts the profile and its channels in one
// transaction, so a failed channel insert never leaves an orphaned profile.
func (r *InfluencerRepo) CreateWithChannels(ctx context.Context, p *models.InfluencerProfile, channels []models.InfluencerChannel) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate(err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO influencer_profiles (user_id, birth_date, profile_completed)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.BirthDate, p.ProfileCompleted,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translate(err)
	}

	for i := range channels {
		ch := &channels[i]
		ch.InfluencerProfileID = p.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO influencer_channels (influencer_profile_id, channel_type, channel_name, channel_url, verification_status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, ch.InfluencerProfileID, ch.ChannelType, ch.ChannelName, ch.ChannelURL, ch.VerificationStatus,
		).Scan(&ch.ID, &ch.CreatedAt, &ch.UpdatedAt)
		if err != nil {
			return translate(err)
		}
	}

	return translate(tx.Commit(ctx))
}

func (r *InfluencerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InfluencerProfile, error) {
	var p models.InfluencerProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, to_char(birth_date, 'YYYY-MM-DD'), profile_completed, created_at, updated_at
		FROM influencer_profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.UserID, &p.BirthDate, &p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *InfluencerRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.InfluencerProfile, error) {
	var p models.InfluencerProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, to_char(birth_date, 'YYYY-MM-DD'), profile_completed, created_at, updated_at
		FROM influencer_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.BirthDate, &p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *InfluencerRepo) ListChannels(ctx context.Context, profileID uuid.UUID) ([]models.InfluencerChannel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, influencer_profile_id, channel_type, channel_name, channel_url, verification_status, verified_at, created_at, updated_at
		FROM influencer_channels WHERE influencer_profile_id = $1
		ORDER BY created_at ASC
	`, profileID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanChannels(rows)
}

// ListPendingChannels returns channels awaiting verification, oldest first,
// for the worker's verification job.
func (r *InfluencerRepo) ListPendingChannels(ctx context.Context, limit int) ([]models.InfluencerChannel, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, influencer_profile_id, channel_type, channel_name, channel_url, verification_status, verified_at, created_at, updated_at
		FROM influencer_channels WHERE verification_status = $1
		ORDER BY created_at ASC LIMIT $2
	`, models.ChannelVerificationPending, limit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanChannels(rows)
}

func (r *InfluencerRepo) UpdateChannelVerification(ctx context.Context, channelID uuid.UUID, status string, verifiedAt *time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE influencer_channels SET verification_status = $1, verified_at = $2, updated_at = now()
		WHERE id = $3
	`, status, verifiedAt, channelID)
	return translate(err)
}

func scanChannels(rows pgx.Rows) ([]models.InfluencerChannel, error) {
	var channels []models.InfluencerChannel
	for rows.Next() {
		var ch models.InfluencerChannel
		if err := rows.Scan(&ch.ID, &ch.InfluencerProfileID, &ch.ChannelType, &ch.ChannelName,
			&ch.ChannelURL, &ch.VerificationStatus, &ch.VerifiedAt, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		channels = append(channels, ch)
	}
	return channels, nil
}
