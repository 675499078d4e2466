package charityrepo

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
)

// DonationsRepository persists donation rows. Insert is keyed by the event's
// transaction version, so redelivered events are dropped by the conflict
// clause instead of duplicating rows.
type DonationsRepository interface {
	Initialize(ctx context.Context) error
	Insert(ctx context.Context, d *Donation) error
}

var _ DonationsRepository = (*donationsRepository)(nil)

//go:embed queries/create-donations.sql
var createDonationsQuery string

//go:embed queries/insert-donation.sql
var insertDonationQuery string

type donationsRepository struct {
	client postgres.Client
}

func NewDonationsRepository(client postgres.Client) (DonationsRepository, error) {
	repo := &donationsRepository{client: client}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create donations table: %w", err)
	}
	return repo, nil
}

func (r *donationsRepository) Initialize(ctx context.Context) error {
	if err := r.client.Conn().Exec(ctx, createDonationsQuery); err != nil {
		return fmt.Errorf("failed to create donations table: %w", err)
	}
	return nil
}

func (r *donationsRepository) Insert(ctx context.Context, d *Donation) error {
	err := r.client.Conn().Exec(ctx, insertDonationQuery,
		d.TransactionVersion,
		d.CampaignID,
		d.Donor,
		d.Amount,
		d.HeartTokensMinted,
		d.DonatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert donation at version %d: %w", d.TransactionVersion, err)
	}
	return nil
}
