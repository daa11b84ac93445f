package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// Create inserts the application. The unique (campaign_id,
// influencer_profile_id) constraint surfaces as ErrDuplicate, which closes
// the race left open by the service-level pre-check.
func (r *ApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO applications (campaign_id, influencer_profile_id, message, planned_visit_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.CampaignID, a.InfluencerProfileID, a.Message, a.PlannedVisitDate, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return translate(err)
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, influencer_profile_id, message,
		       to_char(planned_visit_date, 'YYYY-MM-DD'), status, created_at, updated_at
		FROM applications WHERE id = $1
	`, id).Scan(&a.ID, &a.CampaignID, &a.InfluencerProfileID, &a.Message,
		&a.PlannedVisitDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// GetByCampaignAndInfluencer is the advisory duplicate pre-check; the insert
// constraint remains authoritative.
func (r *ApplicationRepo) GetByCampaignAndInfluencer(ctx context.Context, campaignID, influencerProfileID uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, influencer_profile_id, message,
		       to_char(planned_visit_date, 'YYYY-MM-DD'), status, created_at, updated_at
		FROM applications WHERE campaign_id = $1 AND influencer_profile_id = $2
	`, campaignID, influencerProfileID).Scan(&a.ID, &a.CampaignID, &a.InfluencerProfileID, &a.Message,
		&a.PlannedVisitDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE applications SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return translate(err)
}

// CompleteSelectedByCampaign marks every selected application of the
// campaign completed. Used by the worker's batch completion job.
func (r *ApplicationRepo) CompleteSelectedByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE applications SET status = $1, updated_at = now()
		WHERE campaign_id = $2 AND status = $3
	`, models.ApplicationStatusCompleted, campaignID, models.ApplicationStatusSelected)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

type ApplicationFilter struct {
	CampaignID          *uuid.UUID
	InfluencerProfileID *uuid.UUID
	Status              *string
	Limit               int
	Offset              int
}

func (r *ApplicationRepo) List(ctx context.Context, f ApplicationFilter) ([]models.ApplicationWithCampaign, error) {
	query := `
		SELECT a.id, a.campaign_id, a.influencer_profile_id, a.message,
		       to_char(a.planned_visit_date, 'YYYY-MM-DD'), a.status, a.created_at, a.updated_at,
		       c.title, c.status
		FROM applications a
		JOIN campaigns c ON c.id = a.campaign_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.CampaignID != nil {
		where = append(where, fmt.Sprintf("a.campaign_id = $%d", argIdx))
		args = append(args, *f.CampaignID)
		argIdx++
	}
	if f.InfluencerProfileID != nil {
		where = append(where, fmt.Sprintf("a.influencer_profile_id = $%d", argIdx))
		args = append(args, *f.InfluencerProfileID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var apps []models.ApplicationWithCampaign
	for rows.Next() {
		var a models.ApplicationWithCampaign
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.InfluencerProfileID, &a.Message,
			&a.PlannedVisitDate, &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&a.CampaignTitle, &a.CampaignStatus); err != nil {
			return nil, translate(err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}
