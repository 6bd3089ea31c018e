// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "content", []string{"content"}},
		{"comma list", "title,content", []string{"title", "content"}},
		{"whitespace trimmed", " title , content ", []string{"title", "content"}},
		{"empty elements dropped", "title,,content,", []string{"title", "content"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.Flags().String("cols", "", "")
			if err := cmd.Flags().Set("cols", tt.in); err != nil {
				t.Fatalf("setting flag: %v", err)
			}
			got := splitColumns(cmd, "cols")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitColumns(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
