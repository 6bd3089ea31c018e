// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statement

import (
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"simple name", "products_kb", false},
		{"leading underscore", "_internal", false},
		{"mixed case with digits", "Kb2024", false},
		{"empty", "", true},
		{"leading digit", "1kb", true},
		{"embedded space", "my kb", true},
		{"embedded quote", "kb'; DROP TABLE x; --", true},
		{"dot qualified", "proj.kb", true},
		{"hyphen", "my-kb", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		name    string
		project string
		base    string
		want    string
		wantErr bool
	}{
		{"no project", "", "products", "products", false},
		{"with project", "retail", "products", "retail.products", false},
		{"invalid project", "re tail", "products", "", true},
		{"invalid name", "retail", "pro ducts", "", true},
		{"empty name", "retail", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QualifiedName(tt.project, tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("QualifiedName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("QualifiedName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteEscapesSingleQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", "'it''s'"},
		{"a''b", "'a''''b'"},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQuoteList(t *testing.T) {
	got := quoteList([]string{"category", "updated_at"})
	want := "['category', 'updated_at']"
	if got != want {
		t.Errorf("quoteList() = %s, want %s", got, want)
	}

	if got := quoteList(nil); got != "[]" {
		t.Errorf("quoteList(nil) = %s, want []", got)
	}
}
