package model

import (
	"fmt"
	"sort"
)

// Validation is the outcome of a structural workflow check. Warnings flag
// suspicious but executable graphs; errors flag graphs the backend would
// reject.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	NumNodes int      `json:"num_nodes"`
	NumLinks int      `json:"num_links"`
}

// Validate performs a best-effort structural validation of the graph. It
// warns about nodes that take part in no link and about unconnected input
// slots, and reports dependency cycles as errors.
func (w *Workflow) Validate() *Validation {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := &Validation{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
		NumNodes: len(w.nodes),
		NumLinks: len(w.links),
	}

	connected := make(map[int]bool, len(w.nodes))
	for _, link := range w.links {
		connected[link.OriginID] = true
		connected[link.TargetID] = true
	}
	var disconnected []int
	for _, id := range w.nodeOrder {
		if !connected[id] {
			disconnected = append(disconnected, id)
		}
	}
	if len(disconnected) > 0 {
		sort.Ints(disconnected)
		result.Warnings = append(result.Warnings, fmt.Sprintf("disconnected nodes: %v", disconnected))
	}

	for _, id := range w.nodeOrder {
		node := w.nodes[id]
		for i, slot := range node.Inputs {
			if slot.Link == nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("node %d (%s) has unconnected input slot %d", id, node.Type, i))
			}
		}
	}

	if cycle := w.findCycle(); len(cycle) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("workflow contains a cycle through nodes %v", cycle))
		result.Valid = false
	}
	return result
}

// findCycle runs a DFS with white/grey/black colouring over the origin to
// target adjacency implied by the link table and returns the nodes of the
// first back-edge cycle found, or nil. Caller must hold the mutex.
func (w *Workflow) findCycle() []int {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	edges := make(map[int][]int, len(w.nodes))
	for _, id := range w.linkOrder {
		link := w.links[id]
		edges[link.OriginID] = append(edges[link.OriginID], link.TargetID)
	}
	colour := make(map[int]int, len(w.nodes))
	var stack []int

	var dfs func(n int) []int
	dfs = func(n int) []int {
		switch colour[n] {
		case grey:
			// Back-edge: the cycle is the stack suffix starting at n.
			for i, candidate := range stack {
				if candidate == n {
					return append(append([]int{}, stack[i:]...), n)
				}
			}
			return []int{n}
		case black:
			return nil
		}
		colour[n] = grey
		stack = append(stack, n)
		for _, next := range edges[n] {
			if cycle := dfs(next); cycle != nil {
				return cycle
			}
		}
		stack = stack[:len(stack)-1]
		colour[n] = black
		return nil
	}

	for _, id := range w.nodeOrder {
		if colour[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
