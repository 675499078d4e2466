package transform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/charityrepo"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/utils"
)

// CampaignCreatedTransformer upserts a campaign row per CampaignCreated
// event. The upsert is keyed by campaign_id, making redelivery harmless.
type CampaignCreatedTransformer struct {
	campaigns charityrepo.CampaignsRepository
}

func NewCampaignCreatedTransformer(campaigns charityrepo.CampaignsRepository) *CampaignCreatedTransformer {
	return &CampaignCreatedTransformer{campaigns: campaigns}
}

func (t *CampaignCreatedTransformer) Kind() aptos.EventKind {
	return aptos.EventCampaignCreated
}

func (t *CampaignCreatedTransformer) Apply(ctx context.Context, event aptos.Event) error {
	var data aptos.CampaignCreatedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to decode CampaignCreated payload at version %d: %w",
			event.TransactionVersion, err)
	}

	goal, err := utils.ParseU64(data.GoalAmount)
	if err != nil {
		return fmt.Errorf("invalid goal_amount at version %d: %w", event.TransactionVersion, err)
	}
	endSecs, err := utils.ParseU64(data.EndTimestampSecs)
	if err != nil {
		return fmt.Errorf("invalid end_timestamp_secs at version %d: %w", event.TransactionVersion, err)
	}
	createdAt, err := utils.ParseUnixSecs(data.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid created_at at version %d: %w", event.TransactionVersion, err)
	}

	return t.campaigns.Upsert(ctx, &charityrepo.Campaign{
		CampaignID:       data.CampaignID,
		CreatorAddress:   data.Creator,
		Description:      data.Description,
		GoalAmount:       goal,
		EndTimestampSecs: endSecs,
		CreatedAt:        createdAt,
	})
}

var _ Transformer = (*CampaignCreatedTransformer)(nil)
