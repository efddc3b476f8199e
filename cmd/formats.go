/*
Copyright © 2026 docstack
*/

// formats.go implements the "docproc formats" command, listing the
// supported extension set.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docstack/docproc/internal/format"
)

var formatsLong bool

// formatEntry pairs an extension with its MIME hint for JSON output.
type formatEntry struct {
	Extension string `json:"extension"`
	MIME      string `json:"mime"`
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file formats",
	Long:  `List every file extension the extractor accepts.`,
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func runFormats(_ *cobra.Command, _ []string) error {
	exts := format.Extensions()

	if JSON() {
		entries := make([]formatEntry, 0, len(exts))
		for _, e := range exts {
			entries = append(entries, formatEntry{Extension: e, MIME: format.MIME(e)})
		}
		return PrintJSON(entries)
	}

	if formatsLong {
		for _, e := range exts {
			fmt.Fprintf(Out(), "%-8s %s\n", e, format.MIME(e))
		}
		return nil
	}

	// Compact columns, eight per row.
	const perRow = 8
	for i := 0; i < len(exts); i += perRow {
		end := min(i+perRow, len(exts))
		row := make([]string, 0, perRow)
		for _, e := range exts[i:end] {
			row = append(row, fmt.Sprintf("%-8s", e))
		}
		fmt.Fprintln(Out(), strings.TrimRight(strings.Join(row, ""), " "))
	}
	return nil
}

func init() {
	formatsCmd.Flags().BoolVarP(&formatsLong, "long", "l", false, "One extension per line with MIME type")
	rootCmd.AddCommand(formatsCmd)
}
