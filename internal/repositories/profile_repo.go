package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdvertiserProfileRepo struct {
	pool *pgxpool.Pool
}

func NewAdvertiserProfileRepo(pool *pgxpool.Pool) *AdvertiserProfileRepo {
	return &AdvertiserProfileRepo{pool: pool}
}

func (r *AdvertiserProfileRepo) Create(ctx context.Context, p *models.AdvertiserProfile) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO advertiser_profiles (user_id, company_name, location, category, business_registration_number, profile_completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.CompanyName, p.Location, p.Category, p.BusinessRegistrationNumber, p.ProfileCompleted,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translate(err)
}

func (r *AdvertiserProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AdvertiserProfile, error) {
	var p models.AdvertiserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, company_name, location, category, business_registration_number, profile_completed, created_at, updated_at
		FROM advertiser_profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Location, &p.Category,
		&p.BusinessRegistrationNumber, &p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *AdvertiserProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error) {
	var p models.AdvertiserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, company_name, location, category, business_registration_number, profile_completed, created_at, updated_at
		FROM advertiser_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Location, &p.Category,
		&p.BusinessRegistrationNumber, &p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
