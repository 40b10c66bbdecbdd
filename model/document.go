package model

import (
	"encoding/json"
	"fmt"
)

type (
	// Document is the external JSON representation of a workflow, compatible
	// with the downstream visual graph editor.
	Document struct {
		LastNodeID int                    `json:"last_node_id"`
		LastLinkID int                    `json:"last_link_id"`
		Nodes      []*Node                `json:"nodes"`
		Links      []*Link                `json:"links"`
		Groups     []*Group               `json:"groups"`
		Config     map[string]interface{} `json:"config"`
		Extra      map[string]interface{} `json:"extra"`
		Version    float64                `json:"version"`
		Metadata   Metadata               `json:"workflow_metadata"`
	}

	// Metadata carries provenance and naming for a workflow document.
	Metadata struct {
		CreatedWith string `json:"created_with"`
		Agent       string `json:"agent"`
		Version     string `json:"version"`
		Name        string `json:"name,omitempty"`
		Description string `json:"description,omitempty"`
	}
)

// Document exports the workflow to the external document form. Nodes and
// links appear in insertion order so that repeated exports of the same graph
// are byte-for-byte identical.
func (w *Workflow) Document() *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc := &Document{
		LastNodeID: w.nextNodeID - 1,
		LastLinkID: w.nextLinkID - 1,
		Nodes:      make([]*Node, 0, len(w.nodeOrder)),
		Links:      make([]*Link, 0, len(w.linkOrder)),
		Groups:     make([]*Group, 0, len(w.groups)),
		Config:     copyValues(w.config),
		Extra:      copyValues(w.extra),
		Version:    DocumentVersion,
		Metadata:   w.metadata,
	}
	doc.Metadata.Name = w.name
	doc.Metadata.Description = w.description
	for _, id := range w.nodeOrder {
		doc.Nodes = append(doc.Nodes, w.nodes[id].Clone())
	}
	for _, id := range w.linkOrder {
		doc.Links = append(doc.Links, w.links[id].Clone())
	}
	for _, group := range w.groups {
		doc.Groups = append(doc.Groups, group.Clone())
	}
	if doc.Config == nil {
		doc.Config = map[string]interface{}{}
	}
	if doc.Extra == nil {
		doc.Extra = map[string]interface{}{}
	}
	return doc
}

// FromDocument builds a workflow from the external document form. A document
// that references missing nodes, duplicates ids or omits required fields is
// rejected wholesale - no partial recovery is attempted. The id allocators
// resume from max(existing id, recorded last id) + 1 so that a re-imported
// workflow never reissues a colliding id.
func FromDocument(doc *Document) (*Workflow, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	name := doc.Metadata.Name
	if name == "" {
		name = "Imported Workflow"
	}
	workflow := NewWorkflow(name, doc.Metadata.Description)
	if doc.Metadata.CreatedWith != "" {
		workflow.metadata = doc.Metadata
	}

	for i, node := range doc.Nodes {
		if node == nil {
			return nil, fmt.Errorf("node %d is null", i)
		}
		if node.ID <= 0 {
			return nil, fmt.Errorf("node %d has invalid id %d", i, node.ID)
		}
		if node.Type == "" {
			return nil, fmt.Errorf("node %d has no type", node.ID)
		}
		if _, ok := workflow.nodes[node.ID]; ok {
			return nil, fmt.Errorf("duplicate node id %d", node.ID)
		}
		workflow.nodes[node.ID] = node.Clone()
		workflow.nodeOrder = append(workflow.nodeOrder, node.ID)
		if node.ID >= workflow.nextNodeID {
			workflow.nextNodeID = node.ID + 1
		}
	}
	for i, link := range doc.Links {
		if link == nil {
			return nil, fmt.Errorf("link %d is null", i)
		}
		if link.ID <= 0 {
			return nil, fmt.Errorf("link %d has invalid id %d", i, link.ID)
		}
		if _, ok := workflow.links[link.ID]; ok {
			return nil, fmt.Errorf("duplicate link id %d", link.ID)
		}
		if _, ok := workflow.nodes[link.OriginID]; !ok {
			return nil, fmt.Errorf("link %d references unknown origin node %d", link.ID, link.OriginID)
		}
		if _, ok := workflow.nodes[link.TargetID]; !ok {
			return nil, fmt.Errorf("link %d references unknown target node %d", link.ID, link.TargetID)
		}
		workflow.links[link.ID] = link.Clone()
		workflow.linkOrder = append(workflow.linkOrder, link.ID)
		if link.ID >= workflow.nextLinkID {
			workflow.nextLinkID = link.ID + 1
		}
	}
	if doc.LastNodeID >= workflow.nextNodeID {
		workflow.nextNodeID = doc.LastNodeID + 1
	}
	if doc.LastLinkID >= workflow.nextLinkID {
		workflow.nextLinkID = doc.LastLinkID + 1
	}

	for _, group := range doc.Groups {
		workflow.groups = append(workflow.groups, group.Clone())
	}
	workflow.config = copyValues(doc.Config)
	workflow.extra = copyValues(doc.Extra)
	return workflow, nil
}

// ParseDocument decodes document JSON. Malformed documents are a fatal error
// for the caller; the model never partially recovers a corrupt document.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse workflow document: %w", err)
	}
	return doc, nil
}

// JSON encodes the document with stable two-space indentation.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
