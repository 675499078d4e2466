package transform

import (
	"go.uber.org/zap"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/data/postgres/charityrepo"
)

// Registry maps event kinds to their transformers. Unknown kinds are not an
// error at construction; lookups simply report absence and the caller decides
// whether to log or skip.
type Registry struct {
	transformers map[aptos.EventKind]Transformer
}

func NewRegistry(transformers ...Transformer) *Registry {
	m := make(map[aptos.EventKind]Transformer, len(transformers))
	for _, t := range transformers {
		m[t.Kind()] = t
	}
	return &Registry{transformers: m}
}

// Lookup returns the transformer for a kind, if one is registered.
func (r *Registry) Lookup(kind aptos.EventKind) (Transformer, bool) {
	t, ok := r.transformers[kind]
	return t, ok
}

// NewDefaultRegistry wires the full transformer set: the three live kinds plus
// no-op recognizers for the retired staking and governance kinds.
func NewDefaultRegistry(
	campaigns charityrepo.CampaignsRepository,
	donations charityrepo.DonationsRepository,
	fundsClaimed charityrepo.FundsClaimedRepository,
	sugar *zap.SugaredLogger,
) *Registry {
	return NewRegistry(
		NewCampaignCreatedTransformer(campaigns),
		NewDonationTransformer(donations, campaigns, sugar),
		NewFundsClaimedTransformer(fundsClaimed),
		NewNoopTransformer(aptos.EventStake),
		NewNoopTransformer(aptos.EventUnstake),
		NewNoopTransformer(aptos.EventRewardsClaimed),
		NewNoopTransformer(aptos.EventProposalCreated),
		NewNoopTransformer(aptos.EventVoteCast),
	)
}
