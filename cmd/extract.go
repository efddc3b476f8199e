/*
Copyright © 2026 docstack
*/

// extract.go implements the "docproc extract" command: one-shot extraction
// of a single document to stdout.
//
// Design: local validation (extension, file existence) runs before
// configuration is loaded, so an unsupported or missing file is reported
// immediately and identically whether or not credentials are present.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docstack/docproc/internal/extract"
	"github.com/docstack/docproc/internal/format"
	"github.com/docstack/docproc/internal/log"
)

var (
	extractOutputFormat string
	extractRaw          bool
	extractElements     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text from a document",
	Long: `Extract the text content of a document and print it to stdout.

The file is uploaded to the configured S3 source bucket, processed by the
Unstructured platform, and the result is fetched back. Requires AWS and
Unstructured credentials in the environment (see .env support).`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(c *cobra.Command, args []string) error {
	ctx := c.Context()
	path := args[0]

	var err error
	defer func() {
		log.Event("cli:extract", "extract").
			Path(path).
			Format(format.Ext(path)).
			Detail("output_format", extractOutputFormat).
			Write(err)
	}()

	mode, ok := extract.ParseRenderMode(extractOutputFormat)
	if !ok {
		err = fmt.Errorf("invalid output format %q (valid: html, text)", extractOutputFormat)
		return PrintJSONError(err)
	}

	// Local checks before any configuration or network access.
	if ext := format.Ext(path); !format.Supported(ext) {
		err = fmt.Errorf("%w: %q", extract.ErrUnsupportedFormat, ext)
		return PrintJSONError(err)
	}
	if info, statErr := os.Stat(path); statErr != nil {
		err = fmt.Errorf("%w: %v", extract.ErrUnreadableSource, statErr)
		return PrintJSONError(err)
	} else if info.IsDir() {
		err = fmt.Errorf("%w: %s is a directory", extract.ErrUnreadableSource, path)
		return PrintJSONError(err)
	}

	logger := newLogger()
	svc, err := newService(ctx, logger)
	if err != nil {
		return PrintJSONError(err)
	}

	var res *extract.Result
	res, err = svc.Extract(ctx, extract.Request{Path: path, Render: mode})
	if err != nil {
		return PrintJSONError(fmt.Errorf("extract %q: %w", path, err))
	}

	if JSON() {
		if !extractElements {
			res.Elements = nil
		}
		return PrintJSON(res)
	}

	// Render for the terminal unless raw output was requested or stdout is
	// a pipe.
	if !extractRaw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, renderErr := glamour.Render(res.Text, "dark"); renderErr == nil {
			fmt.Fprint(Out(), rendered)
			return nil
		}
	}
	fmt.Fprintln(Out(), res.Text)
	return nil
}

func init() {
	extractCmd.Flags().StringVar(&extractOutputFormat, "output-format", "text", "Content flattening: html or text")
	extractCmd.Flags().BoolVar(&extractRaw, "raw", false, "Output raw text without terminal rendering")
	extractCmd.Flags().BoolVar(&extractElements, "elements", false, "Include structural elements in JSON output")
	rootCmd.AddCommand(extractCmd)
}
