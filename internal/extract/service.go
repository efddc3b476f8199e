// Package extract orchestrates one-shot document extraction through the
// Unstructured platform: the source file is staged in S3, processed by a
// freshly provisioned workflow, and the resulting element JSON is fetched,
// decoded and flattened into text.
//
// Each call is independent and stateless. Provisioned platform resources
// (connectors, workflow) and staged S3 objects live only for the duration
// of the call; cleanup runs even when extraction fails midway.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/docstack/docproc/internal/config"
	"github.com/docstack/docproc/internal/format"
	"github.com/docstack/docproc/internal/unstructured"
)

// Platform is the slice of the Unstructured API client the service uses.
// *unstructured.Client satisfies it; tests supply fakes.
type Platform interface {
	CreateSource(ctx context.Context, name string, cfg unstructured.S3ConnectorConfig) (string, error)
	DeleteSource(ctx context.Context, id string) error
	CreateDestination(ctx context.Context, name string, cfg unstructured.S3ConnectorConfig) (string, error)
	DeleteDestination(ctx context.Context, id string) error
	CreateWorkflow(ctx context.Context, spec unstructured.WorkflowSpec) (string, error)
	DeleteWorkflow(ctx context.Context, id string) error
	RunWorkflow(ctx context.Context, id string) error
	LatestJob(ctx context.Context, workflowID string) (unstructured.Job, error)
	Job(ctx context.Context, id string) (unstructured.Job, error)
}

// Stager stages files in and out of the S3 scratch buckets.
// *storage.Store satisfies it; tests supply fakes.
type Stager interface {
	Upload(ctx context.Context, bucket, path string) (string, error)
	Download(ctx context.Context, bucket, key, dir string) (string, error)
	Empty(ctx context.Context, bucket string) ([]string, error)
}

// Service runs the extraction pipeline.
type Service struct {
	cfg      *config.Config
	platform Platform
	stage    Stager
	logger   *slog.Logger

	// now is replaceable for deterministic resource naming in tests.
	now func() time.Time
}

// New creates a Service. A nil logger falls back to slog.Default.
func New(cfg *config.Config, platform Platform, stage Stager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		platform: platform,
		stage:    stage,
		logger:   logger,
		now:      time.Now,
	}
}

// Extract runs the full pipeline for req and returns the flattened content.
// Every returned error wraps one of ErrUnsupportedFormat,
// ErrUnreadableSource or ErrExtractionFailed.
func (s *Service) Extract(ctx context.Context, req Request) (*Result, error) {
	start := s.now()

	ext := format.Ext(req.Path)
	if !format.Supported(ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, req.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadableSource, req.Path)
	}

	elements, err := s.process(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:      req.Path,
		Extension: ext,
		MIME:      format.MIME(ext),
		Text:      Render(elements, req.Render),
		Elements:  elements,
		Duration:  s.now().Sub(start),
	}, nil
}

// process stages the file, runs the workflow and returns the decoded
// elements. All provisioned resources are released before it returns.
func (s *Service) process(ctx context.Context, path string) ([]Element, error) {
	cu := &cleanup{svc: s, ctx: ctx}
	defer cu.run()

	if _, err := s.stage.Upload(ctx, s.cfg.SourceBucket, path); err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
		}
		return nil, fmt.Errorf("%w: stage source: %v", ErrExtractionFailed, err)
	}
	cu.sourceStaged = true

	suffix := s.now().Format("2006-01-02-15-04-05")

	srcID, err := s.platform.CreateSource(ctx, "s3-source-"+suffix, unstructured.S3ConnectorConfig{
		RemoteURL: "s3://" + s.cfg.SourceBucket,
		Key:       s.cfg.AWSKey,
		Secret:    s.cfg.AWSSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	cu.sourceID = srcID

	dstID, err := s.platform.CreateDestination(ctx, "s3-destination-"+suffix, unstructured.S3ConnectorConfig{
		RemoteURL: "s3://" + s.cfg.DestinationBucket,
		Key:       s.cfg.AWSKey,
		Secret:    s.cfg.AWSSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	cu.destinationID = dstID

	wfID, err := s.platform.CreateWorkflow(ctx, workflowSpec(suffix, srcID, dstID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	cu.workflowID = wfID

	if err := s.platform.RunWorkflow(ctx, wfID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	job, err := s.platform.LatestJob(ctx, wfID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	job, err = s.awaitJob(ctx, job)
	if err != nil {
		return nil, err
	}
	if !job.Succeeded() {
		return nil, fmt.Errorf("%w: job %s finished with status %s", ErrExtractionFailed, job.ID, job.Status)
	}
	s.logger.InfoContext(ctx, "platform job completed", "job_id", job.ID)

	resultKey := filepath.Base(path) + ".json"
	local, err := s.stage.Download(ctx, s.cfg.DestinationBucket, resultKey, s.cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch result: %v", ErrExtractionFailed, err)
	}
	defer os.Remove(local)

	f, err := os.Open(local)
	if err != nil {
		return nil, fmt.Errorf("%w: open result: %v", ErrExtractionFailed, err)
	}
	defer f.Close()

	elements, err := DecodeElements(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return elements, nil
}

// awaitJob polls the job until it reaches a terminal status, at the
// configured interval, bounded by the configured timeout and by ctx.
func (s *Service) awaitJob(ctx context.Context, job unstructured.Job) (unstructured.Job, error) {
	if job.Terminal() {
		return job, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return job, fmt.Errorf("%w: waiting for job %s: %v", ErrExtractionFailed, job.ID, ctx.Err())
		case <-ticker.C:
		}

		cur, err := s.platform.Job(ctx, job.ID)
		if err != nil {
			return job, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		s.logger.DebugContext(ctx, "job status", "job_id", cur.ID, "status", cur.Status)
		if cur.Terminal() {
			return cur, nil
		}
		job = cur
	}
}

// workflowSpec builds the three-node extraction workflow: a VLM partitioner
// plus prompter nodes that describe detected images and tables.
func workflowSpec(suffix, sourceID, destinationID string) unstructured.WorkflowSpec {
	return unstructured.WorkflowSpec{
		Name:          "s3-to-s3-custom-workflow-" + suffix,
		SourceID:      sourceID,
		DestinationID: destinationID,
		WorkflowType:  unstructured.WorkflowTypeCustom,
		WorkflowNodes: []unstructured.WorkflowNode{
			{
				Name:    "Partitioner",
				Subtype: unstructured.SubtypeVLM,
				Type:    unstructured.NodeTypePartition,
				Settings: map[string]any{
					"provider":           "anthropic",
					"provider_api_key":   nil,
					"model":              "claude-3-5-sonnet-20241022",
					"output_format":      "text/html",
					"user_prompt":        nil,
					"format_html":        true,
					"unique_element_ids": true,
					"is_dynamic":         true,
					"allow_fast":         true,
				},
			},
			{
				Name:     "Image summarizer",
				Subtype:  unstructured.SubtypeImageSummarizer,
				Type:     unstructured.NodeTypePrompter,
				Settings: map[string]any{},
			},
			{
				Name:     "Table summarizer",
				Subtype:  unstructured.SubtypeTableSummarizer,
				Type:     unstructured.NodeTypePrompter,
				Settings: map[string]any{},
			},
		},
	}
}

// cleanup tears down per-request platform resources and empties the scratch
// buckets. Failures are logged, never returned: a successful extraction must
// not be reported as failed because teardown hiccuped, and a failed one
// should surface its original error.
type cleanup struct {
	svc *Service
	ctx context.Context

	sourceStaged  bool
	sourceID      string
	destinationID string
	workflowID    string
}

func (c *cleanup) run() {
	// Teardown must proceed even when the request context is cancelled.
	ctx := context.WithoutCancel(c.ctx)
	s := c.svc

	if c.workflowID != "" {
		if err := s.platform.DeleteWorkflow(ctx, c.workflowID); err != nil {
			s.logger.Warn("cleanup: delete workflow", "id", c.workflowID, "error", err)
		}
	}
	if c.sourceID != "" {
		if err := s.platform.DeleteSource(ctx, c.sourceID); err != nil {
			s.logger.Warn("cleanup: delete source connector", "id", c.sourceID, "error", err)
		}
	}
	if c.destinationID != "" {
		if err := s.platform.DeleteDestination(ctx, c.destinationID); err != nil {
			s.logger.Warn("cleanup: delete destination connector", "id", c.destinationID, "error", err)
		}
	}
	if c.sourceStaged {
		if _, err := s.stage.Empty(ctx, s.cfg.SourceBucket); err != nil {
			s.logger.Warn("cleanup: empty source bucket", "bucket", s.cfg.SourceBucket, "error", err)
		}
		if _, err := s.stage.Empty(ctx, s.cfg.DestinationBucket); err != nil {
			s.logger.Warn("cleanup: empty destination bucket", "bucket", s.cfg.DestinationBucket, "error", err)
		}
	}
}
