package charityrepo

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
)

// FundsClaimedRepository persists the append-only log of claim events.
type FundsClaimedRepository interface {
	Initialize(ctx context.Context) error
	Insert(ctx context.Context, fc *FundsClaimed) error
}

var _ FundsClaimedRepository = (*fundsClaimedRepository)(nil)

//go:embed queries/create-funds-claimed.sql
var createFundsClaimedQuery string

//go:embed queries/insert-funds-claimed.sql
var insertFundsClaimedQuery string

type fundsClaimedRepository struct {
	client postgres.Client
}

func NewFundsClaimedRepository(client postgres.Client) (FundsClaimedRepository, error) {
	repo := &fundsClaimedRepository{client: client}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create funds_claimed table: %w", err)
	}
	return repo, nil
}

func (r *fundsClaimedRepository) Initialize(ctx context.Context) error {
	if err := r.client.Conn().Exec(ctx, createFundsClaimedQuery); err != nil {
		return fmt.Errorf("failed to create funds_claimed table: %w", err)
	}
	return nil
}

func (r *fundsClaimedRepository) Insert(ctx context.Context, fc *FundsClaimed) error {
	err := r.client.Conn().Exec(ctx, insertFundsClaimedQuery,
		fc.TransactionVersion,
		fc.CampaignID,
		fc.Creator,
		fc.AmountClaimed,
		fc.ClaimedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert funds claim at version %d: %w", fc.TransactionVersion, err)
	}
	return nil
}
