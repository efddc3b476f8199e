/*
Copyright © 2026 docstack
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docstack/docproc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		info := version.Get()
		if JSON() {
			return PrintJSON(info)
		}
		fmt.Fprint(Out(), info.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
