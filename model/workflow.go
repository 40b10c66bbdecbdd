package model

import (
	"sync"

	"github.com/comfygraph/comfygraph/internal/idgen"
)

// DocumentVersion is the visual editor document format version this model
// reads and writes.
const DocumentVersion = 0.4

// Workflow is an in-memory node/link graph with mutation support. Every
// operation holds the workflow mutex for its full duration so that multi-step
// mutations (slot growth followed by link insertion) are never interleaved.
//
// Structural invariant: after any operation returns, every link's endpoints
// resolve to live nodes and every slot link reference names a live link.
type Workflow struct {
	mu          sync.RWMutex
	id          string
	name        string
	description string

	nodes     map[int]*Node
	nodeOrder []int
	links     map[int]*Link
	linkOrder []int

	groups   []*Group
	config   map[string]interface{}
	extra    map[string]interface{}
	metadata Metadata

	nextNodeID int
	nextLinkID int
}

// Connection describes one remote endpoint reachable over a single link.
type Connection struct {
	NodeID   int    `json:"node_id"`
	NodeType string `json:"node_type"`
	FromSlot int    `json:"from_slot"`
	ToSlot   int    `json:"to_slot"`
}

// NodeInfo combines a node's identity with its resolved neighborhood.
type NodeInfo struct {
	ID            int           `json:"id"`
	Type          string        `json:"type"`
	Pos           [2]int        `json:"pos"`
	WidgetsValues []interface{} `json:"widgets_values"`
	ConnectedTo   []*Connection `json:"connected_to"`
	ConnectedFrom []*Connection `json:"connected_from"`
}

// NodeSummary is the short node listing form.
type NodeSummary struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	Pos        [2]int `json:"pos"`
	NumInputs  int    `json:"num_inputs"`
	NumOutputs int    `json:"num_outputs"`
}

// NewWorkflow creates an empty workflow with a freshly generated identity.
func NewWorkflow(name, description string) *Workflow {
	return &Workflow{
		id:          idgen.New(),
		name:        name,
		description: description,
		nodes:       make(map[int]*Node),
		links:       make(map[int]*Link),
		config:      make(map[string]interface{}),
		extra: map[string]interface{}{
			"ds": map[string]interface{}{"scale": 1.0, "offset": []interface{}{0, 0}},
		},
		metadata: Metadata{
			CreatedWith: "comfygraph",
			Agent:       "comfygraph",
			Version:     "1.0.0",
		},
		nextNodeID: 1,
		nextLinkID: 1,
	}
}

// ID returns the workflow identity, stable for the object's lifetime.
func (w *Workflow) ID() string {
	return w.id
}

// Name returns the workflow name.
func (w *Workflow) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// SetName updates the workflow name.
func (w *Workflow) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}

// Description returns the workflow description.
func (w *Workflow) Description() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.description
}

// SetDescription updates the workflow description.
func (w *Workflow) SetDescription(description string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.description = description
}

// NodeCount returns the number of nodes in the graph.
func (w *Workflow) NodeCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.nodes)
}

// LinkCount returns the number of links in the graph.
func (w *Workflow) LinkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.links)
}

// AddNode allocates the next node id and inserts a node of the given type.
// Node ids start at 1, strictly increase and are never reused, even after
// removal. The type is opaque - it is accepted verbatim. When pos is nil the
// node is placed on a 3-column grid so that agent-driven construction stays
// visually legible.
func (w *Workflow) AddNode(nodeType string, pos *[2]int, widgetsValues []interface{}) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	nodeID := w.nextNodeID
	w.nextNodeID++

	position := autoPosition(nodeID)
	if pos != nil {
		position = *pos
	}
	if widgetsValues == nil {
		widgetsValues = []interface{}{}
	}
	node := &Node{
		ID:            nodeID,
		Type:          nodeType,
		Pos:           position,
		Size:          defaultNodeSize,
		Flags:         map[string]interface{}{},
		Inputs:        []*InputSlot{},
		Outputs:       []*OutputSlot{},
		Properties:    map[string]interface{}{},
		WidgetsValues: widgetsValues,
	}
	w.nodes[nodeID] = node
	w.nodeOrder = append(w.nodeOrder, nodeID)
	return nodeID
}

// RemoveNode deletes a node together with every link that references it.
// It returns false when the node does not exist.
func (w *Workflow) RemoveNode(nodeID int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.nodes[nodeID]; !ok {
		return false
	}
	for _, linkID := range append([]int{}, w.linkOrder...) {
		link := w.links[linkID]
		if link != nil && (link.OriginID == nodeID || link.TargetID == nodeID) {
			w.detachLink(link)
			delete(w.links, linkID)
			w.linkOrder = removeID(w.linkOrder, linkID)
		}
	}
	delete(w.nodes, nodeID)
	w.nodeOrder = removeID(w.nodeOrder, nodeID)
	return true
}

// ConnectNodes creates a link from the origin node's output slot to the
// target node's input slot. Validation precedes any mutation: when either
// endpoint node is missing the call returns (0, false) and the graph is
// untouched. Slot tables grow on demand up to the requested index. An input
// slot holds at most one incoming link; a link already occupying the target
// slot is fully disconnected before the new one is installed, so no dangling
// reference survives the call.
func (w *Workflow) ConnectNodes(originID, originSlot, targetID, targetSlot int, dataType string) (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	origin, ok := w.nodes[originID]
	if !ok {
		return 0, false
	}
	target, ok := w.nodes[targetID]
	if !ok {
		return 0, false
	}
	if originSlot < 0 || targetSlot < 0 {
		return 0, false
	}

	origin.EnsureOutputSlots(originSlot, dataType)
	target.EnsureInputSlots(targetSlot, dataType)

	// An input slot holds at most one link; supersede the previous one.
	if previous := target.Inputs[targetSlot].Link; previous != nil {
		if old := w.links[*previous]; old != nil {
			w.detachLink(old)
			delete(w.links, old.ID)
			w.linkOrder = removeID(w.linkOrder, old.ID)
		}
	}

	linkID := w.nextLinkID
	w.nextLinkID++

	link := &Link{
		ID:         linkID,
		OriginID:   originID,
		OriginSlot: originSlot,
		TargetID:   targetID,
		TargetSlot: targetSlot,
		Type:       dataType,
	}
	w.links[linkID] = link
	w.linkOrder = append(w.linkOrder, linkID)

	origin.Outputs[originSlot].Links = append(origin.Outputs[originSlot].Links, linkID)
	slotLink := linkID
	target.Inputs[targetSlot].Link = &slotLink
	return linkID, true
}

// DisconnectNodes removes a link and clears both endpoint slot references.
// It returns false when the link does not exist.
func (w *Workflow) DisconnectNodes(linkID int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	link, ok := w.links[linkID]
	if !ok {
		return false
	}
	w.detachLink(link)
	delete(w.links, linkID)
	w.linkOrder = removeID(w.linkOrder, linkID)
	return true
}

// detachLink clears the slot references on both endpoints of the link. The
// caller removes the link record itself and must hold the workflow mutex.
func (w *Workflow) detachLink(link *Link) {
	if origin, ok := w.nodes[link.OriginID]; ok && link.OriginSlot < len(origin.Outputs) {
		origin.Outputs[link.OriginSlot].Links = removeID(origin.Outputs[link.OriginSlot].Links, link.ID)
	}
	if target, ok := w.nodes[link.TargetID]; ok && link.TargetSlot < len(target.Inputs) {
		if ref := target.Inputs[link.TargetSlot].Link; ref != nil && *ref == link.ID {
			target.Inputs[link.TargetSlot].Link = nil
		}
	}
}

// UpdateNodeParams replaces a node's widget values wholesale. It returns
// false when the node does not exist.
func (w *Workflow) UpdateNodeParams(nodeID int, widgetsValues []interface{}) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	node, ok := w.nodes[nodeID]
	if !ok {
		return false
	}
	if widgetsValues == nil {
		widgetsValues = []interface{}{}
	}
	node.WidgetsValues = widgetsValues
	return true
}

// NodeInfo returns a node's identity plus its resolved neighborhood, derived
// by a full scan of the link table. It returns nil when the node does not
// exist.
func (w *Workflow) NodeInfo(nodeID int) *NodeInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	node, ok := w.nodes[nodeID]
	if !ok {
		return nil
	}
	info := &NodeInfo{
		ID:            node.ID,
		Type:          node.Type,
		Pos:           node.Pos,
		WidgetsValues: node.WidgetsValues,
		ConnectedTo:   []*Connection{},
		ConnectedFrom: []*Connection{},
	}
	for _, linkID := range w.linkOrder {
		link := w.links[linkID]
		if link.OriginID == nodeID {
			info.ConnectedTo = append(info.ConnectedTo, &Connection{
				NodeID:   link.TargetID,
				NodeType: w.nodes[link.TargetID].Type,
				FromSlot: link.OriginSlot,
				ToSlot:   link.TargetSlot,
			})
		}
		if link.TargetID == nodeID {
			info.ConnectedFrom = append(info.ConnectedFrom, &Connection{
				NodeID:   link.OriginID,
				NodeType: w.nodes[link.OriginID].Type,
				FromSlot: link.OriginSlot,
				ToSlot:   link.TargetSlot,
			})
		}
	}
	return info
}

// ListNodes returns a summary of every node in insertion order.
func (w *Workflow) ListNodes() []*NodeSummary {
	w.mu.RLock()
	defer w.mu.RUnlock()

	summaries := make([]*NodeSummary, 0, len(w.nodeOrder))
	for _, id := range w.nodeOrder {
		node := w.nodes[id]
		summaries = append(summaries, &NodeSummary{
			ID:         node.ID,
			Type:       node.Type,
			Pos:        node.Pos,
			NumInputs:  len(node.Inputs),
			NumOutputs: len(node.Outputs),
		})
	}
	return summaries
}

// Links returns a copy of every link in insertion order.
func (w *Workflow) Links() []*Link {
	w.mu.RLock()
	defer w.mu.RUnlock()

	links := make([]*Link, 0, len(w.linkOrder))
	for _, id := range w.linkOrder {
		links = append(links, w.links[id].Clone())
	}
	return links
}

// Node returns a deep copy of the node with the given id, or nil.
func (w *Workflow) Node(nodeID int) *Node {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.nodes[nodeID].Clone()
}

// AddGroup appends a visual group.
func (w *Workflow) AddGroup(group *Group) {
	if group == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.groups = append(w.groups, group)
}

// Clone creates a deep-independent copy of the workflow with a freshly
// generated identity. The id allocators carry over unchanged, so clone and
// original keep numbering from the same point; their id spaces are
// independent afterwards.
func (w *Workflow) Clone() *Workflow {
	w.mu.RLock()
	defer w.mu.RUnlock()

	clone := &Workflow{
		id:          idgen.New(),
		name:        w.name + " (Copy)",
		description: w.description,
		nodes:       make(map[int]*Node, len(w.nodes)),
		links:       make(map[int]*Link, len(w.links)),
		nodeOrder:   append([]int{}, w.nodeOrder...),
		linkOrder:   append([]int{}, w.linkOrder...),
		config:      copyValues(w.config),
		extra:       copyValues(w.extra),
		metadata:    w.metadata,
		nextNodeID:  w.nextNodeID,
		nextLinkID:  w.nextLinkID,
	}
	for id, node := range w.nodes {
		clone.nodes[id] = node.Clone()
	}
	for id, link := range w.links {
		clone.links[id] = link.Clone()
	}
	for _, group := range w.groups {
		clone.groups = append(clone.groups, group.Clone())
	}
	return clone
}

// autoPosition lays a node out on a 3-column grid: column = (id-1) mod 3,
// row = (id-1) div 3, spaced 400x300 from a (50,50) origin. It is a pure
// function of the node id, so replaying the same insertion history yields
// the same layout.
func autoPosition(nodeID int) [2]int {
	column := (nodeID - 1) % 3
	row := (nodeID - 1) / 3
	return [2]int{50 + column*400, 50 + row*300}
}

// removeID removes the first occurrence of id from ids, preserving order.
func removeID(ids []int, id int) []int {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
