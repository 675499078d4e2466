// Package scheduler drives periodic sync passes on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// PassFunc runs one sync pass.
type PassFunc func(ctx context.Context) error

// Start runs one pass immediately, then one per tick, until the context is
// cancelled. Pass failures are logged and the loop keeps going; the next pass
// re-reads the checkpoint and retries the same window.
func Start(ctx context.Context, interval time.Duration, pass PassFunc, sugar *zap.SugaredLogger) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		if err := pass(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			sugar.Errorw("scheduled sync pass failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
