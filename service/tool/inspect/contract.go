package inspect

import "github.com/comfygraph/comfygraph/model"

// DocumentInput identifies the workflow to export.
type DocumentInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
}

// DocumentOutput carries the exported document.
type DocumentOutput struct {
	WorkflowID string          `json:"workflow_id"`
	Document   *model.Document `json:"document"`
}

// SummaryInput identifies the workflow to summarise.
type SummaryInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
}

// Statistics aggregates graph counters by node type.
type Statistics struct {
	TotalNodes int            `json:"total_nodes"`
	TotalLinks int            `json:"total_links"`
	NodeTypes  map[string]int `json:"node_types"`
}

// Connection is one link rendered with both endpoint types spelled out.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// SummaryOutput carries workflow identity, counters, the node list and a
// readable connection map.
type SummaryOutput struct {
	WorkflowID  string               `json:"workflow_id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	IsActive    bool                 `json:"is_active"`
	Statistics  *Statistics          `json:"statistics"`
	Nodes       []*model.NodeSummary `json:"nodes"`
	Connections []*Connection        `json:"connections"`
}

// ValidateInput identifies the workflow to validate.
type ValidateInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
}

// ValidateOutput carries the validation report.
type ValidateOutput struct {
	WorkflowID string `json:"workflow_id"`
	*model.Validation
}

// DiffInput names the two workflows to compare. Either id may be empty to
// mean the active workflow.
type DiffInput struct {
	FromID string `json:"from_id,omitempty"`
	ToID   string `json:"to_id,omitempty"`
}

// DiffOutput carries the unified diff of the two exported documents.
type DiffOutput struct {
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	Diff      string `json:"diff"`
	Identical bool   `json:"identical"`
}
