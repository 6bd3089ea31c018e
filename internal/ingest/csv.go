// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads CSV files and drives row ingestion into a knowledge
// base. Column roles follow the fixed heuristics: the identifier column is
// the one literally named "id" when present, else the first column; content
// columns default to everything that is neither the identifier nor declared
// metadata. Values pass through to the platform as-is.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Dataset is one parsed CSV file: header in file order plus data rows.
// Ragged rows are kept (padded short, never truncated) so the ingestion
// layer can attribute their rejection to the right line.
type Dataset struct {
	Header []string
	Rows   [][]string
}

// LoadCSV reads a header-first CSV file. A missing file or an empty header
// is a configuration error; a file with a header and no data rows is
// rejected too, since there is nothing to ingest.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows surface per-row, not as a parse abort

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty: expected a header row", path)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) == 1 && header[0] == "" {
		return nil, fmt.Errorf("%s has an empty header row", path)
	}

	ds := &Dataset{Header: header, Rows: records[1:]}
	if len(ds.Rows) == 0 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}
	return ds, nil
}

// ColumnPlan assigns each header column a role for knowledge-base creation
// and ingestion.
type ColumnPlan struct {
	// ID is the identifier column.
	ID string

	// Content are the embedded columns, in header order.
	Content []string

	// Metadata are the declared metadata columns, in header order.
	Metadata []string
}

// PlanColumns derives the column roles from a header and the declared
// metadata columns. The result is a deterministic function of header order.
// Declared metadata columns must exist in the header; the identifier column
// cannot be metadata.
func PlanColumns(header, declaredMetadata []string) (ColumnPlan, error) {
	if len(header) == 0 {
		return ColumnPlan{}, fmt.Errorf("header has no columns")
	}

	index := make(map[string]bool, len(header))
	for _, h := range header {
		index[h] = true
	}

	plan := ColumnPlan{ID: header[0]}
	for _, h := range header {
		if h == "id" {
			plan.ID = "id"
			break
		}
	}

	metadata := make(map[string]bool, len(declaredMetadata))
	for _, m := range declaredMetadata {
		if !index[m] {
			return ColumnPlan{}, fmt.Errorf("metadata column %q not found in header %v", m, header)
		}
		if m == plan.ID {
			return ColumnPlan{}, fmt.Errorf("identifier column %q cannot be metadata", m)
		}
		metadata[m] = true
	}

	for _, h := range header {
		switch {
		case h == plan.ID:
		case metadata[h]:
			plan.Metadata = append(plan.Metadata, h)
		default:
			plan.Content = append(plan.Content, h)
		}
	}

	if len(plan.Content) == 0 {
		return ColumnPlan{}, fmt.Errorf("no content columns remain after identifier and metadata selection")
	}
	return plan, nil
}
