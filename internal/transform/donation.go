package transform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/charityrepo"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/utils"
)

// DonationTransformer inserts a donation row per DonationEvent and folds the
// amount into the campaign's running total. The read-modify-write of the
// total is not wrapped in a transaction; concurrent passes can lose an update
// (documented behavior, demonstrated by TestOrchestrator_ConcurrentPasses).
//
// A donation referencing an unknown campaign is kept as an orphaned row and
// the aggregate is left untouched.
type DonationTransformer struct {
	donations charityrepo.DonationsRepository
	campaigns charityrepo.CampaignsRepository
	logger    *zap.SugaredLogger

	// now is the ingestion clock. DonationEvent carries no timestamp, so
	// donated_at is stamped at processing time.
	now func() time.Time
}

func NewDonationTransformer(
	donations charityrepo.DonationsRepository,
	campaigns charityrepo.CampaignsRepository,
	sugar *zap.SugaredLogger,
) *DonationTransformer {
	return &DonationTransformer{
		donations: donations,
		campaigns: campaigns,
		logger:    sugar,
		now:       time.Now,
	}
}

func (t *DonationTransformer) Kind() aptos.EventKind {
	return aptos.EventDonation
}

func (t *DonationTransformer) Apply(ctx context.Context, event aptos.Event) error {
	var data aptos.DonationData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to decode DonationEvent payload at version %d: %w",
			event.TransactionVersion, err)
	}

	amount, err := utils.ParseU64(data.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount at version %d: %w", event.TransactionVersion, err)
	}
	hearts, err := utils.ParseU64(data.HeartTokensMinted)
	if err != nil {
		return fmt.Errorf("invalid heart_tokens_minted at version %d: %w", event.TransactionVersion, err)
	}

	err = t.donations.Insert(ctx, &charityrepo.Donation{
		TransactionVersion: uint64(event.TransactionVersion),
		CampaignID:         data.CampaignID,
		Donor:              data.Donor,
		Amount:             amount,
		HeartTokensMinted:  hearts,
		DonatedAt:          t.now().UTC(),
	})
	if err != nil {
		return err
	}

	total, err := t.campaigns.ReadTotalDonated(ctx, data.CampaignID)
	if err != nil {
		if errors.Is(err, charityrepo.ErrCampaignNotFound) {
			// Drop rather than corrupt the aggregate. The donation row above
			// stays orphaned.
			t.logger.Warnw("donation references unknown campaign",
				"campaignID", data.CampaignID,
				"version", event.TransactionVersion,
			)
			return nil
		}
		return err
	}

	return t.campaigns.SetTotalDonated(ctx, data.CampaignID, total+amount)
}

var _ Transformer = (*DonationTransformer)(nil)
