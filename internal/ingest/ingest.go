// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meshintel/kbctl/internal/platform"
	"github.com/meshintel/kbctl/internal/statement"
	"github.com/meshintel/kbctl/pkg/types"
)

// maxReportedRowErrors caps the per-row detail carried in a summary; the
// counts always cover every row.
const maxReportedRowErrors = 25

// Runner ingests a Dataset into one knowledge base through a platform
// session.
type Runner struct {
	Exec    platform.Executor
	Project string
	KBName  string
	Log     *zap.Logger
}

// Run issues one insert per data row. A rejected row is recorded and the
// batch continues; only a failure that makes the whole run impossible
// (missing knowledge base, auth rejection, dead session) aborts. The
// returned summary reports accepted and rejected counts either way.
func (r *Runner) Run(ctx context.Context, ds *Dataset) (types.IngestSummary, error) {
	summary := types.IngestSummary{Total: len(ds.Rows)}
	r.Log.Info("ingesting rows",
		zap.String("kb", r.KBName), zap.Int("rows", summary.Total))

	for i, row := range ds.Rows {
		line := i + 2 // header is line 1
		st, err := r.rowStatement(ds.Header, row)
		if err != nil {
			summary.Failed++
			r.recordRowError(&summary, line, err)
			continue
		}

		if err := r.Exec.Exec(ctx, st); err != nil {
			if platform.IsNotFound(err) || platform.IsAuth(err) {
				return summary, fmt.Errorf("ingestion aborted at line %d: %w", line, err)
			}
			summary.Failed++
			r.recordRowError(&summary, line, err)
			continue
		}
		summary.Inserted++
	}

	if summary.Failed > 0 {
		r.Log.Warn("ingestion finished with rejected rows",
			zap.String("kb", r.KBName),
			zap.Int("inserted", summary.Inserted), zap.Int("failed", summary.Failed))
	} else {
		r.Log.Info("ingestion finished",
			zap.String("kb", r.KBName), zap.Int("inserted", summary.Inserted))
	}
	return summary, nil
}

// RunAsync wraps the whole batch in one server-side job and returns its
// handle without waiting. Statement-building failures are still attributed
// per row and excluded from the job.
func (r *Runner) RunAsync(ctx context.Context, ds *Dataset) (types.IngestSummary, error) {
	summary := types.IngestSummary{Total: len(ds.Rows)}

	var inserts []statement.Statement
	for i, row := range ds.Rows {
		st, err := r.rowStatement(ds.Header, row)
		if err != nil {
			summary.Failed++
			r.recordRowError(&summary, i+2, err)
			continue
		}
		inserts = append(inserts, st)
	}
	if len(inserts) == 0 {
		return summary, fmt.Errorf("no ingestable rows: all %d rows were rejected", summary.Total)
	}

	handle := NewJobHandle("ingest")
	job, err := statement.CreateJob(handle, inserts)
	if err != nil {
		return summary, err
	}

	r.Log.Info("submitting ingestion job",
		zap.String("kb", r.KBName), zap.String("job", handle), zap.Int("rows", len(inserts)))
	if err := r.Exec.Exec(ctx, job); err != nil {
		return summary, fmt.Errorf("submitting ingestion job: %w", err)
	}

	summary.JobHandle = handle
	return summary, nil
}

// rowStatement builds the insert for one data row. Short rows are padded
// with empty strings; rows longer than the header are rejected.
func (r *Runner) rowStatement(header, row []string) (statement.Statement, error) {
	if len(row) > len(header) {
		return statement.Statement{}, fmt.Errorf("row has %d values for %d columns", len(row), len(header))
	}
	values := make([]string, len(header))
	copy(values, row)
	return statement.InsertRow(r.Project, r.KBName, header, values)
}

func (r *Runner) recordRowError(summary *types.IngestSummary, line int, err error) {
	r.Log.Warn("row rejected", zap.String("kb", r.KBName), zap.Int("line", line), zap.Error(err))
	if len(summary.RowErrors) < maxReportedRowErrors {
		summary.RowErrors = append(summary.RowErrors, types.RowError{Line: line, Err: err.Error()})
	}
}

// NewJobHandle generates a platform-safe job name for one async operation.
func NewJobHandle(op string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("kbctl_%s_%s", op, id[:12])
}
