package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/influmatch/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (advertiser_profile_id, title, recruitment_start_date, recruitment_end_date,
		                       max_participants, benefits, mission, store_info, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, c.AdvertiserProfileID, c.Title, c.RecruitmentStartDate, c.RecruitmentEndDate,
		c.MaxParticipants, c.Benefits, c.Mission, c.StoreInfo, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translate(err)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT id, advertiser_profile_id, title,
		       to_char(recruitment_start_date, 'YYYY-MM-DD'), to_char(recruitment_end_date, 'YYYY-MM-DD'),
		       max_participants, benefits, mission, store_info, status, created_at, updated_at
		FROM campaigns WHERE id = $1
	`, id).Scan(&c.ID, &c.AdvertiserProfileID, &c.Title,
		&c.RecruitmentStartDate, &c.RecruitmentEndDate,
		&c.MaxParticipants, &c.Benefits, &c.Mission, &c.StoreInfo, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CampaignRepo) GetByIDWithAdvertiser(ctx context.Context, id uuid.UUID) (*models.CampaignWithAdvertiser, error) {
	var c models.CampaignWithAdvertiser
	err := r.pool.QueryRow(ctx, `
		SELECT c.id, c.advertiser_profile_id, c.title,
		       to_char(c.recruitment_start_date, 'YYYY-MM-DD'), to_char(c.recruitment_end_date, 'YYYY-MM-DD'),
		       c.max_participants, c.benefits, c.mission, c.store_info, c.status, c.created_at, c.updated_at,
		       a.company_name, a.location, a.category
		FROM campaigns c
		JOIN advertiser_profiles a ON a.id = c.advertiser_profile_id
		WHERE c.id = $1
	`, id).Scan(&c.ID, &c.AdvertiserProfileID, &c.Title,
		&c.RecruitmentStartDate, &c.RecruitmentEndDate,
		&c.MaxParticipants, &c.Benefits, &c.Mission, &c.StoreInfo, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
		&c.CompanyName, &c.AdvertiserLocation, &c.AdvertiserCategory)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET title = $1, recruitment_start_date = $2, recruitment_end_date = $3,
		       max_participants = $4, benefits = $5, mission = $6, store_info = $7, status = $8,
		       updated_at = now()
		WHERE id = $9
	`, c.Title, c.RecruitmentStartDate, c.RecruitmentEndDate,
		c.MaxParticipants, c.Benefits, c.Mission, c.StoreInfo, c.Status, c.ID)
	return translate(err)
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return translate(err)
}

type CampaignFilter struct {
	AdvertiserProfileID *uuid.UUID
	Status              *string
	Limit               int
	Offset              int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.CampaignWithAdvertiser, error) {
	query := `
		SELECT c.id, c.advertiser_profile_id, c.title,
		       to_char(c.recruitment_start_date, 'YYYY-MM-DD'), to_char(c.recruitment_end_date, 'YYYY-MM-DD'),
		       c.max_participants, c.benefits, c.mission, c.store_info, c.status, c.created_at, c.updated_at,
		       a.company_name, a.location, a.category
		FROM campaigns c
		JOIN advertiser_profiles a ON a.id = c.advertiser_profile_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.AdvertiserProfileID != nil {
		where = append(where, fmt.Sprintf("c.advertiser_profile_id = $%d", argIdx))
		args = append(args, *f.AdvertiserProfileID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("c.status = $%d", argIdx))
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
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var campaigns []models.CampaignWithAdvertiser
	for rows.Next() {
		var c models.CampaignWithAdvertiser
		if err := rows.Scan(&c.ID, &c.AdvertiserProfileID, &c.Title,
			&c.RecruitmentStartDate, &c.RecruitmentEndDate,
			&c.MaxParticipants, &c.Benefits, &c.Mission, &c.StoreInfo, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
			&c.CompanyName, &c.AdvertiserLocation, &c.AdvertiserCategory); err != nil {
			return nil, translate(err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

// ListRecruitingEndedBefore returns recruiting campaigns whose recruitment
// end date has passed, for the worker's auto-close job.
func (r *CampaignRepo) ListRecruitingEndedBefore(ctx context.Context, date string, limit int) ([]models.Campaign, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, advertiser_profile_id, title,
		       to_char(recruitment_start_date, 'YYYY-MM-DD'), to_char(recruitment_end_date, 'YYYY-MM-DD'),
		       max_participants, benefits, mission, store_info, status, created_at, updated_at
		FROM campaigns
		WHERE status = $1 AND recruitment_end_date < $2
		ORDER BY recruitment_end_date ASC LIMIT $3
	`, models.CampaignStatusRecruiting, date, limit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanCampaigns(rows)
}

// ListClosedBefore returns closed campaigns whose status last changed before
// cutoff, for the worker's batch completion job.
func (r *CampaignRepo) ListClosedBefore(ctx context.Context, cutoff string, limit int) ([]models.Campaign, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, advertiser_profile_id, title,
		       to_char(recruitment_start_date, 'YYYY-MM-DD'), to_char(recruitment_end_date, 'YYYY-MM-DD'),
		       max_participants, benefits, mission, store_info, status, created_at, updated_at
		FROM campaigns
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at ASC LIMIT $3
	`, models.CampaignStatusClosed, cutoff, limit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanCampaigns(rows)
}

func scanCampaigns(rows pgx.Rows) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.AdvertiserProfileID, &c.Title,
			&c.RecruitmentStartDate, &c.RecruitmentEndDate,
			&c.MaxParticipants, &c.Benefits, &c.Mission, &c.StoreInfo, &c.Status,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}
