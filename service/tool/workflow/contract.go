package workflow

import "github.com/comfygraph/comfygraph/session"

// CreateInput names a new workflow.
type CreateInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateOutput reports the created workflow identity.
type CreateOutput struct {
	WorkflowID  string `json:"workflow_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// LoadInput locates a workflow document to import. SetActive defaults to
// true when omitted.
type LoadInput struct {
	Location  string `json:"location"`
	SetActive *bool  `json:"set_active,omitempty"`
}

// LoadOutput summarises the imported workflow.
type LoadOutput struct {
	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name"`
	NumNodes   int    `json:"num_nodes"`
	NumLinks   int    `json:"num_links"`
	IsActive   bool   `json:"is_active"`
}

// SaveInput locates where to persist a workflow document.
type SaveInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	Location   string `json:"location"`
}

// SaveOutput confirms the save.
type SaveOutput struct {
	Status     string `json:"status"`
	Location   string `json:"location"`
	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name"`
}

// ListInput has no parameters.
type ListInput struct{}

// ListOutput lists every workflow in the session.
type ListOutput struct {
	Workflows []*session.Summary `json:"workflows"`
}

// SetActiveInput selects the workflow targeted by id-less operations.
type SetActiveInput struct {
	WorkflowID string `json:"workflow_id"`
}

// SetActiveOutput confirms the switch.
type SetActiveOutput struct {
	Status     string `json:"status"`
	WorkflowID string `json:"workflow_id"`
}

// DeleteInput identifies the workflow to remove from the session.
type DeleteInput struct {
	WorkflowID string `json:"workflow_id"`
}

// DeleteOutput confirms the removal.
type DeleteOutput struct {
	Status     string `json:"status"`
	WorkflowID string `json:"workflow_id"`
}

// CloneInput identifies the workflow to copy.
type CloneInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	NewName    string `json:"new_name,omitempty"`
}

// CloneOutput reports the copy's identity.
type CloneOutput struct {
	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name"`
	ClonedFrom string `json:"cloned_from"`
}
