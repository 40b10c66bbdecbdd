package inspect

import (
	"context"
	"testing"

	"github.com/comfygraph/comfygraph/session"
	"github.com/stretchr/testify/assert"
)

func newTestService() (*Service, *session.Session, string) {
	aSession := session.New()
	id := aSession.Create("test", "a test workflow")
	return New(aSession), aSession, id
}

func TestService_Document(t *testing.T) {
	service, aSession, id := newTestService()
	workflow, _ := aSession.Lookup(id)
	workflow.AddNode("LoadImage", nil, nil)

	output := &DocumentOutput{}
	assert.NoError(t, service.document(context.Background(), &DocumentInput{}, output))
	assert.Equal(t, id, output.WorkflowID)
	if assert.NotNil(t, output.Document) {
		assert.Len(t, output.Document.Nodes, 1)
		assert.Equal(t, "test", output.Document.Metadata.Name)
	}
}

func TestService_Summary(t *testing.T) {
	service, aSession, id := newTestService()
	workflow, _ := aSession.Lookup(id)
	a := workflow.AddNode("A", nil, nil)
	b := workflow.AddNode("B", nil, nil)
	workflow.ConnectNodes(a, 0, b, 0, "*")

	output := &SummaryOutput{}
	assert.NoError(t, service.summary(context.Background(), &SummaryInput{WorkflowID: id}, output))
	assert.Equal(t, "test", output.Name)
	assert.Equal(t, "a test workflow", output.Description)
	assert.True(t, output.IsActive)
	if assert.NotNil(t, output.Statistics) {
		assert.Equal(t, 2, output.Statistics.TotalNodes)
		assert.Equal(t, 1, output.Statistics.TotalLinks)
		assert.Equal(t, map[string]int{"A": 1, "B": 1}, output.Statistics.NodeTypes)
	}
	assert.Len(t, output.Nodes, 2)
	if assert.Len(t, output.Connections, 1) {
		assert.Equal(t, "A (#1)", output.Connections[0].From)
		assert.Equal(t, "B (#2)", output.Connections[0].To)
	}
}

func TestService_Validate(t *testing.T) {
	service, aSession, id := newTestService()
	workflow, _ := aSession.Lookup(id)
	workflow.AddNode("Note", nil, nil)

	output := &ValidateOutput{}
	assert.NoError(t, service.validate(context.Background(), &ValidateInput{}, output))
	assert.Equal(t, id, output.WorkflowID)
	assert.True(t, output.Valid)
	assert.NotEmpty(t, output.Warnings)
}

func TestService_ValidateMissingWorkflow(t *testing.T) {
	service := New(session.New())
	err := service.validate(context.Background(), &ValidateInput{}, &ValidateOutput{})
	assert.ErrorIs(t, err, session.ErrWorkflowNotFound)
}

func TestService_Diff(t *testing.T) {
	service, aSession, id := newTestService()
	workflow, _ := aSession.Lookup(id)
	workflow.AddNode("LoadImage", nil, nil)

	clone := workflow.Clone()
	cloneID := aSession.Add(clone)

	// Identical content apart from the metadata name suffix.
	output := &DiffOutput{}
	assert.NoError(t, service.diff(context.Background(), &DiffInput{FromID: id, ToID: cloneID}, output))
	assert.False(t, output.Identical)
	assert.Contains(t, output.Diff, "(Copy)")

	clone.AddNode("SaveImage", nil, nil)
	changed := &DiffOutput{}
	assert.NoError(t, service.diff(context.Background(), &DiffInput{FromID: id, ToID: cloneID}, changed))
	assert.Contains(t, changed.Diff, "SaveImage")

	same := &DiffOutput{}
	assert.NoError(t, service.diff(context.Background(), &DiffInput{FromID: id, ToID: id}, same))
	assert.True(t, same.Identical)
	assert.Empty(t, same.Diff)
}
