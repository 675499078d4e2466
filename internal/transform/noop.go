package transform

import (
	"context"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
)

// NoopTransformer recognizes a retired event kind and intentionally performs
// no mutation. Earlier contract revisions emitted staking and governance
// events; treating them as valid-but-ignored keeps historical streams from
// surfacing as unknown-kind errors.
type NoopTransformer struct {
	kind aptos.EventKind
}

func NewNoopTransformer(kind aptos.EventKind) *NoopTransformer {
	return &NoopTransformer{kind: kind}
}

func (t *NoopTransformer) Kind() aptos.EventKind {
	return t.kind
}

func (t *NoopTransformer) Apply(ctx context.Context, event aptos.Event) error {
	return nil
}

var _ Transformer = (*NoopTransformer)(nil)
