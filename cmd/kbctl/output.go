// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/kbctl/internal/platform"
)

const maxCellWidth = 40

// writeResults prints a normalized result set in the format selected by the
// --json/--format flags. The default is a fixed-width table; rows print in
// server order.
func writeResults(cmd *cobra.Command, rs *platform.ResultSet) error {
	jsonFlag, _ := cmd.Flags().GetBool("json")
	format, _ := cmd.Flags().GetString("format")
	if jsonFlag {
		format = "json"
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rs.Maps())
	case "yaml":
		data, err := yaml.Marshal(rs.Maps())
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "", "table":
		writeTable(rs)
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func writeTable(rs *platform.ResultSet) {
	if len(rs.Rows) == 0 {
		fmt.Println("No results found.")
		return
	}

	widths := make([]int, len(rs.Columns))
	for i, c := range rs.Columns {
		widths[i] = len(c)
	}
	for _, row := range rs.Rows {
		for i, v := range row {
			if w := len(clip(v)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var header strings.Builder
	for i, c := range rs.Columns {
		fmt.Fprintf(&header, "%-*s  ", widths[i], c)
	}
	fmt.Println(strings.TrimRight(header.String(), " "))
	fmt.Println(strings.Repeat("-", len(strings.TrimRight(header.String(), " "))))

	for _, row := range rs.Rows {
		var line strings.Builder
		for i, v := range row {
			fmt.Fprintf(&line, "%-*s  ", widths[i], clip(v))
		}
		fmt.Println(strings.TrimRight(line.String(), " "))
	}

	fmt.Printf("\n%d row(s)\n", len(rs.Rows))
}

func clip(v string) string {
	if len(v) > maxCellWidth {
		return v[:maxCellWidth-3] + "..."
	}
	return v
}
