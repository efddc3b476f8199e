package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstack/docproc/internal/extract"
)

// fakeExtractor returns a canned result or error and records requests.
type fakeExtractor struct {
	result *extract.Result
	err    error
	reqs   []extract.Request
}

func (f *fakeExtractor) Extract(_ context.Context, req extract.Request) (*extract.Result, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// callReq builds a CallToolRequest with the given arguments.
func callReq(args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

// firstText returns the text of the first content item in the result.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	tc, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content is not text")
	return tc.Text
}

func TestExtractDocument(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fx := &fakeExtractor{result: &extract.Result{
			Path:      "/docs/report.pdf",
			Extension: ".pdf",
			MIME:      "application/pdf",
			Text:      "<h1> Hello</h1><br>",
			Elements:  []extract.Element{{Type: "Title", Text: "Hello"}},
		}}
		s := New(fx, nil)

		res, err := s.handleExtractDocument(context.Background(), callReq(map[string]any{
			"path": "/docs/report.pdf",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var resp extractResponse
		require.NoError(t, json.Unmarshal([]byte(firstText(t, res)), &resp))
		assert.Equal(t, ".pdf", resp.Extension)
		assert.Contains(t, resp.Text, "Hello")
		assert.Nil(t, resp.Elements, "elements excluded by default")

		require.Len(t, fx.reqs, 1)
		assert.Equal(t, extract.RenderHTMLMode, fx.reqs[0].Render)
	})

	t.Run("include elements", func(t *testing.T) {
		fx := &fakeExtractor{result: &extract.Result{
			Text:     "Hello",
			Elements: []extract.Element{{Type: "Title", Text: "Hello"}},
		}}
		s := New(fx, nil)

		res, err := s.handleExtractDocument(context.Background(), callReq(map[string]any{
			"path":             "/docs/report.pdf",
			"include_elements": true,
			"output_format":    "text",
		}))
		require.NoError(t, err)

		var resp extractResponse
		require.NoError(t, json.Unmarshal([]byte(firstText(t, res)), &resp))
		require.Len(t, resp.Elements, 1)
		assert.Equal(t, extract.RenderTextMode, fx.reqs[0].Render)
	})

	t.Run("missing path", func(t *testing.T) {
		s := New(&fakeExtractor{}, nil)

		res, err := s.handleExtractDocument(context.Background(), callReq(map[string]any{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("bad output format", func(t *testing.T) {
		fx := &fakeExtractor{}
		s := New(fx, nil)

		res, err := s.handleExtractDocument(context.Background(), callReq(map[string]any{
			"path":          "/docs/report.pdf",
			"output_format": "yaml",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Empty(t, fx.reqs, "extractor must not be called")
	})

	t.Run("error taxonomy in message", func(t *testing.T) {
		tests := []struct {
			err  error
			want string
		}{
			{fmt.Errorf("%w: %q", extract.ErrUnsupportedFormat, ".xyz"), "UnsupportedFormat"},
			{fmt.Errorf("%w: no such file", extract.ErrUnreadableSource), "UnreadableSource"},
			{fmt.Errorf("%w: job failed", extract.ErrExtractionFailed), "ExtractionFailed"},
			{errors.New("mystery"), "ExtractionFailed"},
		}
		for _, tc := range tests {
			t.Run(tc.want, func(t *testing.T) {
				s := New(&fakeExtractor{err: tc.err}, nil)
				res, err := s.handleExtractDocument(context.Background(), callReq(map[string]any{
					"path": "/docs/report.pdf",
				}))
				require.NoError(t, err)
				require.True(t, res.IsError)
				assert.Contains(t, firstText(t, res), tc.want)
			})
		}
	})
}

func TestCheckDocument(t *testing.T) {
	t.Run("supported and readable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))

		s := New(&fakeExtractor{}, nil)
		res, err := s.handleCheckDocument(context.Background(), callReq(map[string]any{"path": path}))
		require.NoError(t, err)

		var resp checkResponse
		require.NoError(t, json.Unmarshal([]byte(firstText(t, res)), &resp))
		assert.True(t, resp.Supported)
		assert.True(t, resp.Readable)
		assert.Equal(t, ".pdf", resp.Extension)
		assert.Equal(t, int64(4), resp.Size)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.xyz")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		s := New(&fakeExtractor{}, nil)
		res, err := s.handleCheckDocument(context.Background(), callReq(map[string]any{"path": path}))
		require.NoError(t, err)

		var resp checkResponse
		require.NoError(t, json.Unmarshal([]byte(firstText(t, res)), &resp))
		assert.False(t, resp.Supported)
		assert.True(t, resp.Readable)
		assert.Contains(t, resp.Reason, ".xyz")
	})

	t.Run("missing file", func(t *testing.T) {
		s := New(&fakeExtractor{}, nil)
		res, err := s.handleCheckDocument(context.Background(), callReq(map[string]any{
			"path": "/nonexistent/report.pdf",
		}))
		require.NoError(t, err)

		var resp checkResponse
		require.NoError(t, json.Unmarshal([]byte(firstText(t, res)), &resp))
		assert.True(t, resp.Supported)
		assert.False(t, resp.Readable)
		assert.NotEmpty(t, resp.Reason)
	})
}

func TestListSupportedFormats(t *testing.T) {
	s := New(&fakeExtractor{}, nil)
	res, err := s.handleListFormats(context.Background(), callReq(nil))
	require.NoError(t, err)

	var entries []formatEntry
	require.NoError(t, json.Unmarshal([]byte(firstText(t, res)), &entries))
	assert.Len(t, entries, 61)

	byExt := make(map[string]string, len(entries))
	for _, e := range entries {
		byExt[e.Extension] = e.MIME
	}
	assert.Equal(t, "application/pdf", byExt[".pdf"])
	assert.Contains(t, byExt, ".zabw")
}
