/*
Copyright © 2026 docstack
*/

// check.go implements the "docproc check" command: a purely local verdict
// on whether a file could be extracted. No credentials or network access
// required.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docstack/docproc/internal/format"
)

// checkResult is the verdict for one file.
type checkResult struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	MIME      string `json:"mime,omitempty"`
	Supported bool   `json:"supported"`
	Readable  bool   `json:"readable"`
	Size      int64  `json:"size,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check whether a file can be extracted",
	Long:  `Verify that a file exists and has a supported extension, without uploading or processing anything.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(c *cobra.Command, args []string) error {
	path := args[0]
	res := check(path)

	if JSON() {
		return PrintJSON(res)
	}

	if res.Supported && res.Readable {
		fmt.Fprintf(Out(), "%s: ok (%s, %d bytes)\n", path, res.MIME, res.Size)
		return nil
	}
	fmt.Fprintf(Out(), "%s: cannot extract: %s\n", path, res.Reason)
	// Non-zero exit so scripts can branch on the verdict; the message above
	// is the output, so cobra's own reporting is suppressed.
	c.SilenceUsage = true
	c.SilenceErrors = true
	return errVerdict
}

// errVerdict signals a negative check verdict without extra error output.
var errVerdict = fmt.Errorf("check failed")

func check(path string) checkResult {
	ext := format.Ext(path)
	res := checkResult{
		Path:      path,
		Extension: ext,
		Supported: format.Supported(ext),
	}
	if res.Supported {
		res.MIME = format.MIME(ext)
	} else {
		res.Reason = fmt.Sprintf("extension %q is not supported", ext)
	}

	if info, err := os.Stat(path); err != nil {
		if res.Reason == "" {
			res.Reason = err.Error()
		}
	} else if info.IsDir() {
		if res.Reason == "" {
			res.Reason = "path is a directory"
		}
	} else {
		res.Readable = true
		res.Size = info.Size()
	}
	return res
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
