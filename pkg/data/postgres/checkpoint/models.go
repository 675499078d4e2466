package checkpoint

import "time"

// Checkpoint records the last transaction version fully processed by a named
// processor. It is the resume point for the next sync pass; the version is
// monotonically non-decreasing and the row is never deleted.
type Checkpoint struct {
	ProcessorName string    `json:"processor_name"`
	Version       uint64    `json:"last_processed_version"`
	UpdatedAt     time.Time `json:"updated_at"`
}
