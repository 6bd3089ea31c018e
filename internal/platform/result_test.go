// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"reflect"
	"testing"
)

func searchResultSet() *ResultSet {
	return &ResultSet{
		Columns: []string{"id", "content", "relevance"},
		Rows: [][]string{
			{"p1", "blue jacket", "0.91"},
			{"p2", "red shoes", "0.74"},
		},
	}
}

func TestColumnIndex(t *testing.T) {
	rs := searchResultSet()
	if i := rs.ColumnIndex("content"); i != 1 {
		t.Errorf("ColumnIndex(content) = %d, want 1", i)
	}
	if i := rs.ColumnIndex("RELEVANCE"); i != 2 {
		t.Errorf("ColumnIndex should match case-insensitively, got %d", i)
	}
	if i := rs.ColumnIndex("missing"); i != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", i)
	}
}

func TestValue(t *testing.T) {
	rs := searchResultSet()
	if v := rs.Value(0, "id"); v != "p1" {
		t.Errorf("Value(0, id) = %q", v)
	}
	if v := rs.Value(1, "content"); v != "red shoes" {
		t.Errorf("Value(1, content) = %q", v)
	}
	if v := rs.Value(0, "missing"); v != "" {
		t.Errorf("Value for missing column = %q, want empty", v)
	}
	if v := rs.Value(9, "id"); v != "" {
		t.Errorf("Value for out-of-range row = %q, want empty", v)
	}
}

func TestRelevance(t *testing.T) {
	rs := searchResultSet()
	v, ok := rs.Relevance(0)
	if !ok || v != 0.91 {
		t.Errorf("Relevance(0) = %v, %v", v, ok)
	}

	// relevance_score is an accepted alias.
	alias := &ResultSet{
		Columns: []string{"id", "relevance_score"},
		Rows:    [][]string{{"p1", "0.5"}},
	}
	v, ok = alias.Relevance(0)
	if !ok || v != 0.5 {
		t.Errorf("Relevance via alias = %v, %v", v, ok)
	}

	noScore := &ResultSet{Columns: []string{"id"}, Rows: [][]string{{"p1"}}}
	if _, ok := noScore.Relevance(0); ok {
		t.Error("Relevance should report absence")
	}

	bad := &ResultSet{Columns: []string{"relevance"}, Rows: [][]string{{"high"}}}
	if _, ok := bad.Relevance(0); ok {
		t.Error("unparseable relevance should report absence")
	}
}

func TestMaps(t *testing.T) {
	rs := searchResultSet()
	got := rs.Maps()
	want := []map[string]string{
		{"id": "p1", "content": "blue jacket", "relevance": "0.91"},
		{"id": "p2", "content": "red shoes", "relevance": "0.74"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Maps() = %v, want %v", got, want)
	}
}
