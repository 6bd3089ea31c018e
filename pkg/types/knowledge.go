// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// TaskType identifies the model-backed task an AI table applies to its
// source rows.
type TaskType string

const (
	TaskSummarization  TaskType = "summarization"
	TaskClassification TaskType = "classification"
	TaskGeneration     TaskType = "generation"
)

// ParseTaskType validates a task-type string. Anything outside the three
// recognized values is a configuration error, reported before any remote
// statement is issued.
func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(s) {
	case TaskSummarization, TaskClassification, TaskGeneration:
		return TaskType(s), nil
	}
	return "", fmt.Errorf("unrecognized task type %q: use summarization, classification, or generation", s)
}

// SearchOptions parameterizes a semantic search against a knowledge base.
type SearchOptions struct {
	// Query is the free-text search string.
	Query string `json:"query" yaml:"query"`

	// Limit caps the number of returned rows (default 10).
	Limit int `json:"limit" yaml:"limit"`

	// RelevanceThreshold filters rows server-side; range [0,1], default 0.5.
	RelevanceThreshold float64 `json:"relevance_threshold" yaml:"relevance_threshold"`

	// LatestBy, when set, names a timestamp column projected through a
	// latest-value window alongside each result row.
	LatestBy string `json:"latest_by,omitempty" yaml:"latest_by,omitempty"`
}

// Validate rejects out-of-range options before any remote call is made.
func (o SearchOptions) Validate() error {
	if o.Query == "" {
		return fmt.Errorf("search query must not be empty")
	}
	if o.Limit <= 0 {
		return fmt.Errorf("limit must be a positive integer, got %d", o.Limit)
	}
	if o.RelevanceThreshold < 0 || o.RelevanceThreshold > 1 {
		return fmt.Errorf("relevance_threshold must be in [0,1], got %g", o.RelevanceThreshold)
	}
	return nil
}

// AITableConfig describes an AI table to create from a source table or
// knowledge base.
type AITableConfig struct {
	// Name is the AI table identifier.
	Name string `json:"name" yaml:"name"`

	// Project optionally qualifies the name.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// SourceTable is the table or knowledge base the task reads from.
	SourceTable string `json:"source_table" yaml:"source_table"`

	// Task selects the model behavior.
	Task TaskType `json:"task_type" yaml:"task_type"`

	// InputColumns are fed to the model.
	InputColumns []string `json:"input_columns" yaml:"input_columns"`

	// OutputColumn carries the model output in query results.
	OutputColumn string `json:"output_column" yaml:"output_column"`

	// EngineName is the engine backing the model.
	EngineName string `json:"engine_name" yaml:"engine_name"`
}

// JobState is the terminal disposition of a polled server-side job. A
// submitted job that was never polled has no state; polling always ends in
// exactly one of these.
type JobState string

const (
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
	JobTimedOut  JobState = "timed_out"
)

// JobResult reports the outcome of polling one job to a terminal state.
// Failed and timed-out are distinct: Failed means the platform reported an
// error, TimedOut means the client stopped waiting.
type JobResult struct {
	// Handle is the client-generated job name.
	Handle string `json:"handle" yaml:"handle"`

	// State is the terminal disposition.
	State JobState `json:"state" yaml:"state"`

	// Error is the remote-supplied error text for failed jobs, verbatim.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Elapsed is the total time spent polling.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// RowError records one rejected row during ingestion.
type RowError struct {
	// Line is the 1-based CSV line number (header is line 1).
	Line int `json:"line" yaml:"line"`

	// Err is the rejection reason, remote text verbatim when remote.
	Err string `json:"error" yaml:"error"`
}

// IngestSummary reports an ingestion run. A run that inserted some rows and
// rejected others is still a successful run carrying a non-zero Failed
// count; only a run that could not proceed at all is an error.
type IngestSummary struct {
	// Total is the number of data rows read from the CSV.
	Total int `json:"total" yaml:"total"`

	// Inserted is the number of rows accepted by the platform.
	Inserted int `json:"inserted" yaml:"inserted"`

	// Failed is the number of rejected rows.
	Failed int `json:"failed" yaml:"failed"`

	// RowErrors details the rejections, in row order.
	RowErrors []RowError `json:"row_errors,omitempty" yaml:"row_errors,omitempty"`

	// JobHandle is set when ingestion was submitted as an async job.
	JobHandle string `json:"job_handle,omitempty" yaml:"job_handle,omitempty"`
}
