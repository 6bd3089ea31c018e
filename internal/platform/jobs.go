// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/meshintel/kbctl/internal/statement"
	"github.com/meshintel/kbctl/pkg/types"
)

// Job status vocabularies observed from the platform, lowercased.
var (
	succeededStatuses = map[string]bool{"completed": true, "complete": true, "success": true, "finished": true}
	failedStatuses    = map[string]bool{"error": true, "failed": true, "broken": true}
)

// PollJob polls one job until it reaches a terminal state or the time
// budget runs out. The three outcomes are distinct: succeeded, failed
// (platform reported an error, carried verbatim in Result.Error), and
// timed out (the client stopped waiting). Polling never retries a failed
// job and a timeout is never reported as success.
//
// The first check happens after one interval; context cancellation aborts
// the wait and returns ctx.Err.
func PollJob(ctx context.Context, ex Executor, handle string, cfg types.PollConfig, log *zap.Logger) (types.JobResult, error) {
	cfg.Defaults()

	st, err := statement.SelectJobStatus(handle)
	if err != nil {
		return types.JobResult{}, err
	}

	start := time.Now()
	deadline := start.Add(cfg.Timeout)
	attempt := 0

	for {
		if !time.Now().Add(cfg.Interval).Before(deadline) {
			elapsed := time.Since(start)
			log.Warn("job polling timed out",
				zap.String("job", handle), zap.Duration("elapsed", elapsed), zap.Int("attempts", attempt))
			return types.JobResult{Handle: handle, State: types.JobTimedOut, Elapsed: elapsed}, nil
		}

		select {
		case <-ctx.Done():
			return types.JobResult{}, ctx.Err()
		case <-time.After(cfg.Interval):
		}
		attempt++

		rs, err := ex.Query(ctx, st)
		if err != nil {
			return types.JobResult{}, fmt.Errorf("polling job %s: %w", handle, err)
		}
		if len(rs.Rows) == 0 {
			// Not visible yet; keep waiting within the budget.
			continue
		}

		status := strings.ToLower(rs.Value(0, "status"))
		switch {
		case succeededStatuses[status]:
			elapsed := time.Since(start)
			log.Info("job succeeded", zap.String("job", handle), zap.Duration("elapsed", elapsed))
			return types.JobResult{Handle: handle, State: types.JobSucceeded, Elapsed: elapsed}, nil
		case failedStatuses[status]:
			elapsed := time.Since(start)
			remoteErr := rs.Value(0, "error")
			log.Error("job failed",
				zap.String("job", handle), zap.String("remote_error", remoteErr), zap.Duration("elapsed", elapsed))
			return types.JobResult{Handle: handle, State: types.JobFailed, Error: remoteErr, Elapsed: elapsed}, nil
		}

		log.Debug("job still running",
			zap.String("job", handle), zap.String("status", status), zap.Int("attempt", attempt))
	}
}

// DropJob removes a finished one-shot job. Best effort: a job the platform
// already cleaned up is not an error.
func DropJob(ctx context.Context, ex Executor, handle string) error {
	st, err := statement.DropJob(handle)
	if err != nil {
		return err
	}
	if err := ex.Exec(ctx, st); err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}
