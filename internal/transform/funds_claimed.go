package transform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/charityrepo"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/utils"
)

// FundsClaimedTransformer appends one funds_claimed row per claim event.
// No aggregate is mutated.
type FundsClaimedTransformer struct {
	fundsClaimed charityrepo.FundsClaimedRepository
}

func NewFundsClaimedTransformer(fundsClaimed charityrepo.FundsClaimedRepository) *FundsClaimedTransformer {
	return &FundsClaimedTransformer{fundsClaimed: fundsClaimed}
}

func (t *FundsClaimedTransformer) Kind() aptos.EventKind {
	return aptos.EventFundsClaimed
}

func (t *FundsClaimedTransformer) Apply(ctx context.Context, event aptos.Event) error {
	var data aptos.FundsClaimedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to decode FundsClaimed payload at version %d: %w",
			event.TransactionVersion, err)
	}

	amount, err := utils.ParseU64(data.AmountClaimed)
	if err != nil {
		return fmt.Errorf("invalid amount_claimed at version %d: %w", event.TransactionVersion, err)
	}
	claimedAt, err := utils.ParseUnixSecs(data.ClaimedAt)
	if err != nil {
		return fmt.Errorf("invalid claimed_at at version %d: %w", event.TransactionVersion, err)
	}

	return t.fundsClaimed.Insert(ctx, &charityrepo.FundsClaimed{
		TransactionVersion: uint64(event.TransactionVersion),
		CampaignID:         data.CampaignID,
		Creator:            data.Creator,
		AmountClaimed:      amount,
		ClaimedAt:          claimedAt,
	})
}

var _ Transformer = (*FundsClaimedTransformer)(nil)
