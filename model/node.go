package model

import "fmt"

type (
	// Node represents a single processing unit in a workflow graph. The node
	// type and widget values are opaque to the graph model - they are only
	// interpreted by the execution backend.
	Node struct {
		ID            int                    `json:"id"`
		Type          string                 `json:"type"`
		Pos           [2]int                 `json:"pos"`
		Size          [2]int                 `json:"size"`
		Flags         map[string]interface{} `json:"flags"`
		Order         int                    `json:"order"`
		Mode          int                    `json:"mode"`
		Inputs        []*InputSlot           `json:"inputs"`
		Outputs       []*OutputSlot          `json:"outputs"`
		Properties    map[string]interface{} `json:"properties"`
		WidgetsValues []interface{}          `json:"widgets_values"`
	}

	// InputSlot is a typed attachment point that holds at most one incoming
	// link. A nil Link means the slot is unconnected.
	InputSlot struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Link *int   `json:"link"`
	}

	// OutputSlot is a typed attachment point that fans out to zero or more
	// links.
	OutputSlot struct {
		Name  string `json:"name"`
		Type  string `json:"type"`
		Links []int  `json:"links"`
		Shape int    `json:"shape,omitempty"`
	}
)

// defaultNodeSize matches the visual editor's default node extent.
var defaultNodeSize = [2]int{320, 240}

// EnsureOutputSlots grows the output slot table so that index slot is
// addressable, padding with synthesized slots of the given data type.
func (n *Node) EnsureOutputSlots(slot int, dataType string) {
	for len(n.Outputs) <= slot {
		n.Outputs = append(n.Outputs, &OutputSlot{
			Name:  fmt.Sprintf("output_%d", len(n.Outputs)),
			Type:  dataType,
			Links: []int{},
			Shape: 3,
		})
	}
}

// EnsureInputSlots grows the input slot table so that index slot is
// addressable, padding with synthesized slots of the given data type.
func (n *Node) EnsureInputSlots(slot int, dataType string) {
	for len(n.Inputs) <= slot {
		n.Inputs = append(n.Inputs, &InputSlot{
			Name: fmt.Sprintf("input_%d", len(n.Inputs)),
			Type: dataType,
		})
	}
}

// Clone creates a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		ID:    n.ID,
		Type:  n.Type,
		Pos:   n.Pos,
		Size:  n.Size,
		Order: n.Order,
		Mode:  n.Mode,
	}
	clone.Flags = copyValues(n.Flags)
	if n.Inputs != nil {
		clone.Inputs = make([]*InputSlot, len(n.Inputs))
		for i, in := range n.Inputs {
			cloned := *in
			if in.Link != nil {
				link := *in.Link
				cloned.Link = &link
			}
			clone.Inputs[i] = &cloned
		}
	}
	if n.Outputs != nil {
		clone.Outputs = make([]*OutputSlot, len(n.Outputs))
		for i, out := range n.Outputs {
			cloned := *out
			cloned.Links = append([]int{}, out.Links...)
			clone.Outputs[i] = &cloned
		}
	}
	clone.Properties = copyValues(n.Properties)
	if n.WidgetsValues != nil {
		clone.WidgetsValues = copyValue(n.WidgetsValues).([]interface{})
	}
	return clone
}
