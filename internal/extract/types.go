// types.go defines the request/response model of the extraction service.
//
// A Request maps to exactly one Result or one error. Nothing is persisted:
// both exist only for the duration of the call.

package extract

import "time"

// RenderMode selects how decoded elements are flattened into the Text field.
type RenderMode string

const (
	// RenderHTMLMode produces the HTML-tagged flattening (titles as <h1>,
	// list items as <li>, tables as their HTML). This is the default and
	// matches what downstream LLM consumers expect.
	RenderHTMLMode RenderMode = "html"
	// RenderTextMode produces plain text, one element per line.
	RenderTextMode RenderMode = "text"
)

// ParseRenderMode validates a user-supplied mode string, defaulting to HTML
// for the empty string.
func ParseRenderMode(s string) (RenderMode, bool) {
	switch RenderMode(s) {
	case "":
		return RenderHTMLMode, true
	case RenderHTMLMode, RenderTextMode:
		return RenderMode(s), true
	}
	return "", false
}

// Request identifies a document to extract.
type Request struct {
	// Path is the local filesystem path of the document.
	Path string
	// Render selects the text flattening mode. Zero value means HTML.
	Render RenderMode
}

// Result is the outcome of one successful extraction.
type Result struct {
	// Path is the source path as given in the request.
	Path string `json:"path"`
	// Extension is the normalised source extension (e.g. ".pdf").
	Extension string `json:"extension"`
	// MIME is a best-effort MIME hint for the source format.
	MIME string `json:"mime"`
	// Text is the flattened document content.
	Text string `json:"text"`
	// Elements are the structural elements the platform detected, in
	// document order.
	Elements []Element `json:"elements,omitempty"`
	// Duration is the wall-clock time of the whole pipeline, in
	// nanoseconds when serialised.
	Duration time.Duration `json:"duration_ns"`
}

// Element is one structural unit detected by the platform: a title, a
// paragraph, a list item, a table, and so on.
type Element struct {
	Type     string          `json:"type"`
	Text     string          `json:"text"`
	Metadata ElementMetadata `json:"metadata"`
}

// ElementMetadata carries the per-element metadata docproc reads. The
// platform emits more fields; they are ignored on decode.
type ElementMetadata struct {
	// TextAsHTML is the HTML rendering of a table element.
	TextAsHTML string `json:"text_as_html,omitempty"`
	// PageNumber is the 1-based page the element was found on, when the
	// format has pages.
	PageNumber int `json:"page_number,omitempty"`
	// Filename is the source file name as recorded by the platform.
	Filename string `json:"filename,omitempty"`
}
