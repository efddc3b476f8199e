// types.go defines the request and response shapes exchanged with the
// Workflow API. Only the fields docproc reads or writes are declared; the
// platform returns more, which json decoding ignores.

package unstructured

// Connector type discriminators.
const (
	ConnectorS3 = "s3"
)

// Workflow node types and subtypes used by the extraction workflow.
const (
	NodeTypePartition = "partition"
	NodeTypePrompter  = "prompter"

	SubtypeVLM             = "vlm"
	SubtypeImageSummarizer = "openai_image_description"
	SubtypeTableSummarizer = "anthropic_table_description"
)

// WorkflowTypeCustom builds the workflow DAG from explicitly listed nodes.
const WorkflowTypeCustom = "custom"

// Job statuses reported by the platform.
const (
	JobScheduled  = "SCHEDULED"
	JobInProgress = "IN_PROGRESS"
	JobCompleted  = "COMPLETED"
	JobFailed     = "FAILED"
	JobStopped    = "STOPPED"
)

// S3ConnectorConfig configures an S3 source or destination connector.
type S3ConnectorConfig struct {
	RemoteURL string `json:"remote_url"`
	Key       string `json:"key"`
	Secret    string `json:"secret"`
}

// createConnectorRequest is the common body for source and destination
// connector creation.
type createConnectorRequest struct {
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Config S3ConnectorConfig `json:"config"`
}

// connectorInfo is the platform's description of a created connector.
type connectorInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type createSourceResponse struct {
	SourceConnectorInformation connectorInfo `json:"source_connector_information"`
}

type createDestinationResponse struct {
	DestinationConnectorInformation connectorInfo `json:"destination_connector_information"`
}

// WorkflowNode is one processing step in a workflow DAG.
type WorkflowNode struct {
	Name     string         `json:"name"`
	Subtype  string         `json:"subtype"`
	Type     string         `json:"type"`
	Settings map[string]any `json:"settings"`
}

// WorkflowSpec describes a workflow to create.
type WorkflowSpec struct {
	Name          string         `json:"name"`
	SourceID      string         `json:"source_id"`
	DestinationID string         `json:"destination_id"`
	WorkflowType  string         `json:"workflow_type"`
	WorkflowNodes []WorkflowNode `json:"workflow_nodes"`
}

type createWorkflowRequest struct {
	CreateWorkflow WorkflowSpec `json:"create_workflow"`
}

type workflowInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createWorkflowResponse struct {
	WorkflowInformation workflowInfo `json:"workflow_information"`
}

// Job is the status of one workflow execution.
type Job struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflow_id"`
	Status     string `json:"status"`
	Created    string `json:"created_at"`
}

// Terminal reports whether the job has finished (successfully or not).
func (j Job) Terminal() bool {
	switch j.Status {
	case JobScheduled, JobInProgress:
		return false
	}
	return true
}

// Succeeded reports whether the job finished successfully.
func (j Job) Succeeded() bool {
	return j.Status == JobCompleted
}
