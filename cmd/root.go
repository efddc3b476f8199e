/*
Copyright © 2026 docstack
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from flags.go to isolate command logic from flag definitions.
// Every command is stateless: configuration and clients are constructed per
// invocation in service.go, never shared between commands.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/docstack/docproc/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "docproc",
	Short: "Document text extraction via the Unstructured platform",
	Long: `docproc extracts text and structure from ~60 document formats (PDF,
Office, images, email, ebooks) by staging files through S3 and processing
them with the Unstructured platform. Run it as a one-shot CLI or as an MCP
server for LLM integration.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and exits 1 on error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if wd, err := os.Getwd(); err == nil {
		log.SetOrigin(wd)
	}

	if err := rootCmd.Execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
