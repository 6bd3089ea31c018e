// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// relevanceColumns are the column names the platform uses for the ranking
// score, checked in order.
var relevanceColumns = []string{"relevance", "relevance_score"}

// ResultSet is a normalized tabular response: column names in server order
// and rows of stringified values. The client never interprets response
// internals beyond column, row, and score extraction.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// normalize drains sql.Rows into a ResultSet. NULLs become empty strings.
func normalize(rows *sql.Rows) (*ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	rs := &ResultSet{Columns: cols}
	raw := make([]sql.RawBytes, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		row := make([]string, len(cols))
		for i, b := range raw {
			row[i] = string(b)
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, Classify(err)
	}
	return rs, nil
}

// ColumnIndex returns the position of a column by case-insensitive name, or
// -1 when absent.
func (r *ResultSet) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Value returns the named column of one row, or "" when the column is
// absent.
func (r *ResultSet) Value(row int, column string) string {
	i := r.ColumnIndex(column)
	if i < 0 || row < 0 || row >= len(r.Rows) {
		return ""
	}
	return r.Rows[row][i]
}

// Relevance extracts the ranking score of one row. The second return is
// false when the response carries no relevance column or the value does not
// parse.
func (r *ResultSet) Relevance(row int) (float64, bool) {
	for _, name := range relevanceColumns {
		if i := r.ColumnIndex(name); i >= 0 {
			v, err := strconv.ParseFloat(r.Rows[row][i], 64)
			if err != nil {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

// Maps renders the rows as column-keyed maps, preserving row order.
func (r *ResultSet) Maps() []map[string]string {
	out := make([]map[string]string, len(r.Rows))
	for i, row := range r.Rows {
		m := make(map[string]string, len(r.Columns))
		for j, c := range r.Columns {
			m[c] = row[j]
		}
		out[i] = m
	}
	return out
}
