// Package session manages a registry of workflows under collaborative
// construction. One workflow is designated "active" and is the implicit
// target of every operation that omits an explicit workflow id.
package session

import (
	"errors"
	"sync"

	"github.com/comfygraph/comfygraph/model"
)

// ErrWorkflowNotFound reports that neither the requested id nor the active
// pointer resolved to a registered workflow.
var ErrWorkflowNotFound = errors.New("workflow not found")

// Session owns a collection of workflows keyed by identity. The active
// pointer is weak: it never keeps a deleted workflow alive and, if any
// workflow exists, it names one that is currently present (or is empty).
type Session struct {
	mu        sync.RWMutex
	workflows map[string]*model.Workflow
	order     []string
	activeID  string
}

// Summary is the per-workflow listing form.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	NumNodes    int    `json:"num_nodes"`
	NumLinks    int    `json:"num_links"`
	IsActive    bool   `json:"is_active"`
}

// New creates an empty session.
func New() *Session {
	return &Session{workflows: make(map[string]*model.Workflow)}
}

// Create registers a new empty workflow and returns its id. The first
// workflow registered in a session becomes active.
func (s *Session) Create(name, description string) string {
	return s.Add(model.NewWorkflow(name, description))
}

// Add registers an existing workflow (imported or cloned) and returns its
// id. It becomes active only if nothing was active before.
func (s *Session) Add(workflow *model.Workflow) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := workflow.ID()
	if _, ok := s.workflows[id]; !ok {
		s.order = append(s.order, id)
	}
	s.workflows[id] = workflow
	if s.activeID == "" {
		s.activeID = id
	}
	return id
}

// Lookup resolves a workflow with the session's single resolution rule:
// explicit id, else the active workflow, else ErrWorkflowNotFound. Every
// operation that accepts an optional workflow id goes through here.
func (s *Session) Lookup(id string) (*model.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id == "" {
		id = s.activeID
	}
	if id == "" {
		return nil, ErrWorkflowNotFound
	}
	workflow, ok := s.workflows[id]
	if !ok {
		return nil, ErrWorkflowNotFound
	}
	return workflow, nil
}

// SetActive switches the active pointer. It returns false when the id is
// unknown.
func (s *Session) SetActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workflows[id]; !ok {
		return false
	}
	s.activeID = id
	return true
}

// ActiveID returns the active workflow id, or empty when none is active.
func (s *Session) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Delete removes a workflow. Deleting the active workflow reassigns the
// active pointer to the first remaining workflow in registration order, or
// clears it when none remain. It returns false when the id is unknown.
func (s *Session) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workflows[id]; !ok {
		return false
	}
	delete(s.workflows, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = ""
		if len(s.order) > 0 {
			s.activeID = s.order[0]
		}
	}
	return true
}

// List returns a summary of every workflow in registration order.
func (s *Session) List() []*Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]*Summary, 0, len(s.order))
	for _, id := range s.order {
		workflow := s.workflows[id]
		summaries = append(summaries, &Summary{
			ID:          id,
			Name:        workflow.Name(),
			Description: workflow.Description(),
			NumNodes:    workflow.NodeCount(),
			NumLinks:    workflow.LinkCount(),
			IsActive:    id == s.activeID,
		})
	}
	return summaries
}

// Size returns the number of registered workflows.
func (s *Session) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workflows)
}
