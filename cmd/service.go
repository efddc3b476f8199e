/*
Copyright © 2026 docstack
*/

// service.go wires configuration and clients into an extraction service.
//
// Construction is deferred until a command actually needs remote access, so
// commands that only do local work (formats, check, version) run without
// any credentials configured.

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/docstack/docproc/internal/config"
	"github.com/docstack/docproc/internal/extract"
	"github.com/docstack/docproc/internal/storage"
	"github.com/docstack/docproc/internal/unstructured"
)

// newLogger returns the slog logger commands share. Logs go to stderr:
// stdout carries command output (and JSON-RPC in serve mode).
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// newService loads configuration and builds a fully wired extraction
// service.
func newService(ctx context.Context, logger *slog.Logger) (*extract.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg.Region, cfg.AWSKey, cfg.AWSSecret)
	if err != nil {
		return nil, fmt.Errorf("initialise s3 client: %w", err)
	}

	platform := unstructured.New(cfg.APIURL, cfg.APIKey)

	return extract.New(cfg, platform, store, logger), nil
}
