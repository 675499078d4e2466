package charityrepo

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
)

// ErrCampaignNotFound is returned when an aggregate read references a
// campaign_id with no campaigns row.
var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignsRepository persists campaign rows and their running donation
// aggregate. Upsert is idempotent under event redelivery; the aggregate is
// excluded from the upsert so a replayed CampaignCreated event cannot reset it.
type CampaignsRepository interface {
	Initialize(ctx context.Context) error
	Upsert(ctx context.Context, c *Campaign) error
	ReadTotalDonated(ctx context.Context, campaignID string) (uint64, error)
	SetTotalDonated(ctx context.Context, campaignID string, total uint64) error
}

var _ CampaignsRepository = (*campaignsRepository)(nil)

//go:embed queries/create-campaigns.sql
var createCampaignsQuery string

//go:embed queries/upsert-campaign.sql
var upsertCampaignQuery string

//go:embed queries/read-total-donated.sql
var readTotalDonatedQuery string

//go:embed queries/set-total-donated.sql
var setTotalDonatedQuery string

type campaignsRepository struct {
	client postgres.Client
}

func NewCampaignsRepository(client postgres.Client) (CampaignsRepository, error) {
	repo := &campaignsRepository{client: client}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create campaigns table: %w", err)
	}
	return repo, nil
}

func (r *campaignsRepository) Initialize(ctx context.Context) error {
	if err := r.client.Conn().Exec(ctx, createCampaignsQuery); err != nil {
		return fmt.Errorf("failed to create campaigns table: %w", err)
	}
	return nil
}

func (r *campaignsRepository) Upsert(ctx context.Context, c *Campaign) error {
	err := r.client.Conn().Exec(ctx, upsertCampaignQuery,
		c.CampaignID,
		c.CreatorAddress,
		c.Description,
		c.GoalAmount,
		c.EndTimestampSecs,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert campaign %s: %w", c.CampaignID, err)
	}
	return nil
}

func (r *campaignsRepository) ReadTotalDonated(ctx context.Context, campaignID string) (uint64, error) {
	var total uint64
	err := r.client.Conn().QueryRow(ctx, readTotalDonatedQuery, campaignID).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
		}
		return 0, fmt.Errorf("failed to read total_donated for campaign %s: %w", campaignID, err)
	}
	return total, nil
}

func (r *campaignsRepository) SetTotalDonated(ctx context.Context, campaignID string, total uint64) error {
	err := r.client.Conn().Exec(ctx, setTotalDonatedQuery, campaignID, total)
	if err != nil {
		return fmt.Errorf("failed to update total_donated for campaign %s: %w", campaignID, err)
	}
	return nil
}
