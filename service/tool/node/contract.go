package node

import "github.com/comfygraph/comfygraph/model"

// AddInput describes a node to add. Pos is optional; when omitted the node
// is placed on the automatic grid.
type AddInput struct {
	WorkflowID    string        `json:"workflow_id,omitempty"`
	NodeType      string        `json:"node_type"`
	Pos           *[2]int       `json:"pos,omitempty"`
	WidgetsValues []interface{} `json:"widgets_values,omitempty"`
}

// AddOutput reports the new node.
type AddOutput struct {
	NodeID   int    `json:"node_id"`
	NodeType string `json:"node_type"`
	Pos      [2]int `json:"pos"`
	Status   string `json:"status"`
}

// RemoveInput identifies the node to remove.
type RemoveInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	NodeID     int    `json:"node_id"`
}

// RemoveOutput confirms the removal.
type RemoveOutput struct {
	NodeID int    `json:"node_id"`
	Status string `json:"status"`
}

// UpdateParamsInput carries the replacement widget values.
type UpdateParamsInput struct {
	WorkflowID    string        `json:"workflow_id,omitempty"`
	NodeID        int           `json:"node_id"`
	WidgetsValues []interface{} `json:"widgets_values"`
}

// UpdateParamsOutput confirms the update.
type UpdateParamsOutput struct {
	NodeID        int           `json:"node_id"`
	WidgetsValues []interface{} `json:"widgets_values"`
	Status        string        `json:"status"`
}

// InfoInput identifies the node to inspect.
type InfoInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	NodeID     int    `json:"node_id"`
}

// InfoOutput carries the node's state and connection tables.
type InfoOutput struct {
	*model.NodeInfo
}

// ListInput identifies the workflow to list.
type ListInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
}

// ListOutput lists the workflow's nodes in insertion order.
type ListOutput struct {
	WorkflowID string               `json:"workflow_id"`
	Nodes      []*model.NodeSummary `json:"nodes"`
	NumNodes   int                  `json:"num_nodes"`
}
