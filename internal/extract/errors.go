// errors.go defines the error taxonomy surfaced to callers.
//
// Every failure of Extract wraps exactly one of these sentinels, so the CLI
// and the MCP layer can classify failures with errors.Is without parsing
// message strings.

package extract

import "errors"

var (
	// ErrUnsupportedFormat means the file extension is outside the
	// supported set. Raised before any upload or platform call.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnreadableSource means the source file is missing, is a
	// directory, or cannot be read.
	ErrUnreadableSource = errors.New("unreadable source")

	// ErrExtractionFailed means the platform side failed: an API call
	// errored, the job finished unsuccessfully, polling timed out, or the
	// result could not be retrieved or decoded.
	ErrExtractionFailed = errors.New("extraction failed")
)
