// Package transform maps raw charity contract events into row mutations
// against the derived Postgres collections. One transformer exists per event
// kind; each applies its mutations synchronously and treats them as a unit.
package transform

import (
	"context"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/aptos"
)

// Transformer maps a single raw event of one kind into its row mutation(s).
type Transformer interface {
	// Kind returns the event kind this transformer handles.
	Kind() aptos.EventKind

	// Apply performs the row mutations for one event. Implementations must be
	// idempotent under redelivery where the data model allows it. Returning an
	// error isolates this event; it does not abort the surrounding pass.
	Apply(ctx context.Context, event aptos.Event) error
}
