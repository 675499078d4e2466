package checkpoint

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/checkpointer"
	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
)

// Repository is used to read and write processor checkpoints in persistent
// storage (Postgres). It implements the checkpointer.Checkpointer interface
// and adds richer accessors for callers that want the full row.
type Repository interface {
	checkpointer.Checkpointer
	ReadCheckpoint(ctx context.Context, processorName string) (*Checkpoint, error)
	WriteCheckpoint(ctx context.Context, cp *Checkpoint) error
}

var _ Repository = (*repository)(nil)
var _ checkpointer.Checkpointer = (*repository)(nil)

//go:embed queries/create-table.sql
var createTableQuery string

//go:embed queries/write-checkpoint.sql
var writeCheckpointQuery string

//go:embed queries/read-checkpoint.sql
var readCheckpointQuery string

type repository struct {
	client    postgres.Client
	tableName string
}

func NewRepository(client postgres.Client, tableName string) (Repository, error) {
	repo := &repository{client: client, tableName: tableName}
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints table: %w", err)
	}
	return repo, nil
}

// Initialize ensures the checkpoint table exists.
// Implements checkpointer.Checkpointer interface.
func (r *repository) Initialize(ctx context.Context) error {
	query := fmt.Sprintf(createTableQuery, r.tableName)
	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create checkpoints table: %w", err)
	}
	return nil
}

// Write upserts the checkpoint row for the named processor.
// Implements checkpointer.Checkpointer interface.
func (r *repository) Write(ctx context.Context, processorName string, version uint64) error {
	return r.WriteCheckpoint(ctx, &Checkpoint{
		ProcessorName: processorName,
		Version:       version,
	})
}

// Read retrieves the checkpoint for the named processor. A missing row means
// the processor has never run; exists is false and version is 0.
// Implements checkpointer.Checkpointer interface.
func (r *repository) Read(ctx context.Context, processorName string) (version uint64, exists bool, err error) {
	cp, err := r.ReadCheckpoint(ctx, processorName)
	if err != nil {
		return 0, false, err
	}
	if cp == nil {
		return 0, false, nil
	}
	return cp.Version, true, nil
}

func (r *repository) ReadCheckpoint(ctx context.Context, processorName string) (*Checkpoint, error) {
	var cp Checkpoint
	query := fmt.Sprintf(readCheckpointQuery, r.tableName)
	err := r.client.Conn().
		QueryRow(ctx, query, processorName).
		Scan(&cp.ProcessorName, &cp.Version, &cp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	return &cp, nil
}

func (r *repository) WriteCheckpoint(ctx context.Context, cp *Checkpoint) error {
	query := fmt.Sprintf(writeCheckpointQuery, r.tableName)
	err := r.client.Conn().Exec(ctx, query, cp.ProcessorName, cp.Version)
	if err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}
