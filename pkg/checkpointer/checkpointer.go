package checkpointer

import "context"

// Checkpointer abstracts checkpoint persistence across different data stores.
// Checkpoints track the last fully processed transaction version for a named
// processor, enabling each sync pass to resume where the previous one stopped.
type Checkpointer interface {
	// Initialize ensures the underlying storage is ready (creates tables,
	// schemas, etc.). This should be idempotent and safe to call multiple times.
	Initialize(ctx context.Context) error

	// Write persists a checkpoint for the named processor. It must only be
	// called with a version derived from events that have been applied.
	// The write is an upsert keyed by processor name.
	Write(ctx context.Context, processorName string, version uint64) error

	// Read retrieves the checkpoint for the named processor. Returns the last
	// processed version and whether a checkpoint exists. If no checkpoint
	// exists (the processor has never run), exists is false and version is 0.
	Read(ctx context.Context, processorName string) (version uint64, exists bool, err error)
}
