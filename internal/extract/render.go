// render.go flattens platform elements into a single text payload.
//
// The HTML mode reproduces the historical output shape consumed by existing
// clients, including its tag quirks (unclosed <br> variants, list items
// without a surrounding list). Changing it would silently change what LLM
// clients receive, so the mapping is kept as-is.

package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Element types emitted by the platform that get dedicated rendering.
const (
	elemTitle         = "Title"
	elemHeader        = "Header"
	elemNarrativeText = "NarrativeText"
	elemUncategorized = "UncategorizedText"
	elemListItem      = "ListItem"
	elemPageNumber    = "PageNumber"
	elemTable         = "Table"
)

// DecodeElements reads the platform's result JSON: a top-level array of
// elements.
func DecodeElements(r io.Reader) ([]Element, error) {
	var elements []Element
	if err := json.NewDecoder(r).Decode(&elements); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	return elements, nil
}

// Render flattens elements according to mode.
func Render(elements []Element, mode RenderMode) string {
	if mode == RenderTextMode {
		return renderText(elements)
	}
	return renderHTML(elements)
}

// renderHTML maps each element to an HTML fragment and joins the fragments
// with single spaces.
func renderHTML(elements []Element) string {
	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		text := strings.TrimSpace(el.Text)
		switch el.Type {
		case elemTitle:
			parts = append(parts, fmt.Sprintf("<h1> %s</h1><br>", text))
		case elemHeader:
			parts = append(parts, fmt.Sprintf("<h2> %s</h2><br/>", text))
		case elemNarrativeText, elemUncategorized:
			parts = append(parts, fmt.Sprintf("<p>%s</p>", text))
		case elemListItem:
			parts = append(parts, fmt.Sprintf("<li>%s</li>", text))
		case elemPageNumber:
			parts = append(parts, fmt.Sprintf("Page number: %s", text))
		case elemTable:
			// Tables keep their HTML so structure survives flattening.
			parts = append(parts, el.Metadata.TextAsHTML)
		default:
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// renderText joins element texts with newlines, skipping empty ones. Tables
// fall back to their HTML when they carry no plain text.
func renderText(elements []Element) string {
	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		text := strings.TrimSpace(el.Text)
		if el.Type == elemTable && text == "" {
			text = el.Metadata.TextAsHTML
		}
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}
