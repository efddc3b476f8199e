// workflows.go implements the connector, workflow and job operations.
//
// Each extraction provisions its own connectors and workflow, runs it once,
// and tears everything down again. That matches the platform's billing and
// isolation model for one-shot processing; nothing here is reused between
// requests.

package unstructured

import (
	"context"
	"fmt"
	"net/url"
)

// CreateSource creates an S3 source connector and returns its id.
func (c *Client) CreateSource(ctx context.Context, name string, cfg S3ConnectorConfig) (string, error) {
	req := createConnectorRequest{Name: name, Type: ConnectorS3, Config: cfg}
	var resp createSourceResponse
	if err := c.do(ctx, "POST", "/api/v1/sources/", req, &resp); err != nil {
		return "", fmt.Errorf("create source connector: %w", err)
	}
	return resp.SourceConnectorInformation.ID, nil
}

// DeleteSource removes a source connector.
func (c *Client) DeleteSource(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/api/v1/sources/"+url.PathEscape(id), nil, nil); err != nil && !IsNotFound(err) {
		return fmt.Errorf("delete source connector %s: %w", id, err)
	}
	return nil
}

// CreateDestination creates an S3 destination connector and returns its id.
func (c *Client) CreateDestination(ctx context.Context, name string, cfg S3ConnectorConfig) (string, error) {
	req := createConnectorRequest{Name: name, Type: ConnectorS3, Config: cfg}
	var resp createDestinationResponse
	if err := c.do(ctx, "POST", "/api/v1/destinations/", req, &resp); err != nil {
		return "", fmt.Errorf("create destination connector: %w", err)
	}
	return resp.DestinationConnectorInformation.ID, nil
}

// DeleteDestination removes a destination connector.
func (c *Client) DeleteDestination(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/api/v1/destinations/"+url.PathEscape(id), nil, nil); err != nil && !IsNotFound(err) {
		return fmt.Errorf("delete destination connector %s: %w", id, err)
	}
	return nil
}

// CreateWorkflow creates a workflow from spec and returns its id.
func (c *Client) CreateWorkflow(ctx context.Context, spec WorkflowSpec) (string, error) {
	var resp createWorkflowResponse
	if err := c.do(ctx, "POST", "/api/v1/workflows/", createWorkflowRequest{CreateWorkflow: spec}, &resp); err != nil {
		return "", fmt.Errorf("create workflow: %w", err)
	}
	return resp.WorkflowInformation.ID, nil
}

// DeleteWorkflow removes a workflow.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/api/v1/workflows/"+url.PathEscape(id), nil, nil); err != nil && !IsNotFound(err) {
		return fmt.Errorf("delete workflow %s: %w", id, err)
	}
	return nil
}

// RunWorkflow triggers one execution of the workflow.
func (c *Client) RunWorkflow(ctx context.Context, id string) error {
	if err := c.do(ctx, "POST", "/api/v1/workflows/"+url.PathEscape(id)+"/run", nil, nil); err != nil {
		return fmt.Errorf("run workflow %s: %w", id, err)
	}
	return nil
}

// LatestJob returns the most recent job for the workflow. The platform
// lists jobs newest first.
func (c *Client) LatestJob(ctx context.Context, workflowID string) (Job, error) {
	var jobs []Job
	path := "/api/v1/jobs/?workflow_id=" + url.QueryEscape(workflowID)
	if err := c.do(ctx, "GET", path, nil, &jobs); err != nil {
		return Job{}, fmt.Errorf("list jobs for workflow %s: %w", workflowID, err)
	}
	if len(jobs) == 0 {
		return Job{}, fmt.Errorf("no jobs found for workflow %s", workflowID)
	}
	return jobs[0], nil
}

// Job returns the current state of a job.
func (c *Client) Job(ctx context.Context, id string) (Job, error) {
	var job Job
	if err := c.do(ctx, "GET", "/api/v1/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return Job{}, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}
