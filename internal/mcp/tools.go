// tools.go defines the MCP tool schemas and their handlers.
//
// Handlers report domain failures through MCP error results (IsError=true)
// rather than Go errors, so the LLM sees an actionable message it can relay
// or retry; transport-level errors remain Go errors.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docstack/docproc/internal/extract"
	"github.com/docstack/docproc/internal/format"
	"github.com/docstack/docproc/internal/log"
)

func (s *Server) registerTools(m *server.MCPServer) {
	m.AddTool(
		mcp.NewTool("extract_document",
			mcp.WithDescription(`Extract the text content of a local document.

Supports about 60 formats (PDF, DOC/DOCX, PPT/PPTX, XLS/XLSX, HTML, EPUB,
EML, images and more - see list_supported_formats). The file is uploaded
for remote processing; large documents can take minutes. Detected tables
are preserved as HTML within the output.`),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Local filesystem path to the document"),
			),
			mcp.WithString("output_format",
				mcp.Description("Content flattening: 'html' (default - headings and lists tagged) or 'text' (plain lines)"),
			),
			mcp.WithBoolean("include_elements",
				mcp.Description("If true, include the structural elements (titles, paragraphs, tables) alongside the flattened text"),
			),
		),
		s.handleExtractDocument,
	)

	m.AddTool(
		mcp.NewTool("check_document",
			mcp.WithDescription("Check whether a local file can be extracted: verifies the file exists and its extension is supported. Makes no remote calls."),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Local filesystem path to the document"),
			),
		),
		s.handleCheckDocument,
	)

	m.AddTool(
		mcp.NewTool("list_supported_formats",
			mcp.WithDescription("List every file extension the extractor accepts, with MIME type hints."),
		),
		s.handleListFormats,
	)
}

// extractResponse is the JSON payload returned by extract_document.
type extractResponse struct {
	Path      string            `json:"path"`
	Extension string            `json:"extension"`
	MIME      string            `json:"mime"`
	Text      string            `json:"text"`
	Elements  []extract.Element `json:"elements,omitempty"`
}

func (s *Server) handleExtractDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil || path == "" {
		return mcp.NewToolResultError("extract_document: path is required"), nil
	}

	mode, ok := extract.ParseRenderMode(getString(req, "output_format", ""))
	if !ok {
		return mcp.NewToolResultError("extract_document: output_format must be 'html' or 'text'"), nil
	}
	includeElements := getBool(req, "include_elements", false)

	s.logger.InfoContext(ctx, "mcp: extract_document", "path", path, "output_format", string(mode))

	var xerr error
	defer func() {
		log.Event("mcp:extract_document", "extract").
			Path(path).
			Format(format.Ext(path)).
			Detail("output_format", string(mode)).
			Write(xerr)
	}()

	res, xerr := s.extractor.Extract(ctx, extract.Request{Path: path, Render: mode})
	if xerr != nil {
		return toolError(xerr), nil
	}

	resp := extractResponse{
		Path:      res.Path,
		Extension: res.Extension,
		MIME:      res.MIME,
		Text:      res.Text,
	}
	if includeElements {
		resp.Elements = res.Elements
	}
	return jsonResult(resp)
}

// checkResponse is the JSON payload returned by check_document.
type checkResponse struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	MIME      string `json:"mime,omitempty"`
	Supported bool   `json:"supported"`
	Readable  bool   `json:"readable"`
	Size      int64  `json:"size,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (s *Server) handleCheckDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil || path == "" {
		return mcp.NewToolResultError("check_document: path is required"), nil
	}

	ext := format.Ext(path)
	resp := checkResponse{
		Path:      path,
		Extension: ext,
		Supported: format.Supported(ext),
	}
	if resp.Supported {
		resp.MIME = format.MIME(ext)
	} else {
		resp.Reason = fmt.Sprintf("extension %q is not in the supported set", ext)
	}

	if info, err := os.Stat(path); err != nil {
		resp.Readable = false
		if resp.Reason == "" {
			resp.Reason = err.Error()
		}
	} else if info.IsDir() {
		resp.Readable = false
		if resp.Reason == "" {
			resp.Reason = "path is a directory"
		}
	} else {
		resp.Readable = true
		resp.Size = info.Size()
	}

	return jsonResult(resp)
}

// formatEntry is one row of the list_supported_formats payload.
type formatEntry struct {
	Extension string `json:"extension"`
	MIME      string `json:"mime"`
}

func (s *Server) handleListFormats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exts := format.Extensions()
	entries := make([]formatEntry, 0, len(exts))
	for _, e := range exts {
		entries = append(entries, formatEntry{Extension: e, MIME: format.MIME(e)})
	}
	return jsonResult(entries)
}

// toolError maps an extraction error onto an MCP error result whose message
// leads with the taxonomy name, so clients can classify without parsing the
// detail.
func toolError(err error) *mcp.CallToolResult {
	name := "ExtractionFailed"
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		name = "UnsupportedFormat"
	case errors.Is(err, extract.ErrUnreadableSource):
		name = "UnreadableSource"
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", name, err))
}
