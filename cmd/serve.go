/*
Copyright © 2026 docstack
*/

// serve.go implements the "docproc serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks handling MCP
// requests until the client disconnects (stdio) or the process receives an
// interrupt (http).

package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docstack/docproc/internal/mcp"
)

var serveHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server",
	Long: `Start an MCP (Model Context Protocol) server for LLM integration.

By default the server speaks stdio, suitable for local agent integrations
such as Claude Desktop. With --http it serves the Streamable HTTP transport
instead:

  docproc serve --http 127.0.0.1:8632`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(c *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	svc, err := newService(ctx, logger)
	if err != nil {
		return err
	}

	srv := mcp.New(svc, logger)
	if serveHTTPAddr != "" {
		return srv.ServeHTTP(ctx, serveHTTPAddr)
	}
	return srv.ServeStdio()
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "Serve Streamable HTTP on this address instead of stdio")
	rootCmd.AddCommand(serveCmd)
}
