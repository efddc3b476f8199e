// Package mcp implements the Model Context Protocol server, exposing
// document extraction to LLM clients. A connected agent hands the server a
// local file path; the server stages the file, runs it through the
// Unstructured platform, and returns the flattened content as the tool
// result.
//
// Transports: stdio (default, for local agent integrations such as Claude
// Desktop) and Streamable HTTP (for remote agents).
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/docstack/docproc/internal/extract"
)

const (
	serverName = "docproc"
	// Version is advertised to clients for capability negotiation.
	Version = "1.0.0"
)

// Extractor runs one extraction request. *extract.Service satisfies it;
// tests supply fakes.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) (*extract.Result, error)
}

// Server wraps an MCP server around an Extractor.
type Server struct {
	mcp       *server.MCPServer
	extractor Extractor
	logger    *slog.Logger
}

// New creates the MCP server with all tools registered. Serving does not
// start until one of the Serve methods is called. A nil logger falls back
// to slog over stderr; stdout must stay reserved for JSON-RPC.
func New(extractor Extractor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	s := &Server{
		extractor: extractor,
		logger:    logger,
	}

	m := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions()),
	)
	s.registerTools(m)
	s.mcp = m
	return s
}

// instructions describes the tool surface to the connecting agent.
func instructions() string {
	return `You are connected to a docproc MCP server.

docproc extracts text and structure from local documents (PDF, Office
formats, images, email, ebooks and about 60 formats in total) using the
Unstructured platform.

Available tools:
- extract_document: extract a document's content given its file path.
  Extraction uploads the file for remote processing and can take a while
  for large documents.
- check_document: cheap local validation - tells you whether a file exists
  and whether its format is supported, without processing anything.
- list_supported_formats: the exact list of supported file extensions.

Call check_document first when unsure whether a file can be processed.`
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("docproc MCP server ready", "version", Version, "transport", "stdio")
	err := server.ServeStdio(s.mcp)
	if errors.Is(err, context.Canceled) {
		s.logger.Info("server stopped")
		return nil
	}
	return err
}

// ServeHTTP runs the server as a Streamable HTTP server on addr until ctx
// is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	streamSrv := server.NewStreamableHTTPServer(s.mcp)
	s.logger.Info("docproc MCP server ready", "version", Version, "transport", "http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
