// Package inspect exposes read-only workflow tools: document export,
// summary, validation and diffing.
package inspect

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/comfygraph/comfygraph/model"
	"github.com/comfygraph/comfygraph/model/types"
	"github.com/comfygraph/comfygraph/session"
	"github.com/pmezard/go-difflib/difflib"
)

const name = "inspect"

// Service implements the read-only inspection tools.
type Service struct {
	session *session.Session
}

// New creates the inspect service.
func New(aSession *session.Session) *Service {
	return &Service{session: aSession}
}

// Name returns the service name.
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods.
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "document",
			Description: "Exports the workflow in the visual editor document format.",
			Input:       reflect.TypeOf(&DocumentInput{}),
			Output:      reflect.TypeOf(&DocumentOutput{}),
		},
		{
			Name:        "summary",
			Description: "Returns workflow counters and identity.",
			Input:       reflect.TypeOf(&SummaryInput{}),
			Output:      reflect.TypeOf(&SummaryOutput{}),
		},
		{
			Name:        "validate",
			Description: "Checks workflow integrity and reports errors and warnings.",
			Input:       reflect.TypeOf(&ValidateInput{}),
			Output:      reflect.TypeOf(&ValidateOutput{}),
		},
		{
			Name:        "diff",
			Description: "Produces a unified diff between two workflow documents.",
			Input:       reflect.TypeOf(&DiffInput{}),
			Output:      reflect.TypeOf(&DiffOutput{}),
		},
	}
}

// Method returns the specified method.
func (s *Service) Method(methodName string) (types.Executable, error) {
	switch strings.ToLower(methodName) {
	case "document":
		return s.document, nil
	case "summary":
		return s.summary, nil
	case "validate":
		return s.validate, nil
	case "diff":
		return s.diff, nil
	default:
		return nil, types.NewMethodNotFoundError(methodName)
	}
}

func (s *Service) document(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*DocumentInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*DocumentOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	output.WorkflowID = workflow.ID()
	output.Document = workflow.Document()
	return nil
}

func (s *Service) summary(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SummaryInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SummaryOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	nodes := workflow.ListNodes()
	nodeTypes := make(map[string]int, len(nodes))
	typeByID := make(map[int]string, len(nodes))
	for _, node := range nodes {
		nodeTypes[node.Type]++
		typeByID[node.ID] = node.Type
	}
	links := workflow.Links()
	connections := make([]*Connection, 0, len(links))
	for _, link := range links {
		connections = append(connections, &Connection{
			From: fmt.Sprintf("%s (#%d)", typeByID[link.OriginID], link.OriginID),
			To:   fmt.Sprintf("%s (#%d)", typeByID[link.TargetID], link.TargetID),
			Type: link.Type,
		})
	}

	output.WorkflowID = workflow.ID()
	output.Name = workflow.Name()
	output.Description = workflow.Description()
	output.IsActive = s.session.ActiveID() == workflow.ID()
	output.Statistics = &Statistics{
		TotalNodes: len(nodes),
		TotalLinks: len(links),
		NodeTypes:  nodeTypes,
	}
	output.Nodes = nodes
	output.Connections = connections
	return nil
}

func (s *Service) validate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ValidateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ValidateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	output.WorkflowID = workflow.ID()
	output.Validation = workflow.Validate()
	return nil
}

func (s *Service) diff(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*DiffInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*DiffOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	from, err := s.session.Lookup(input.FromID)
	if err != nil {
		return err
	}
	to, err := s.session.Lookup(input.ToID)
	if err != nil {
		return err
	}
	fromJSON, err := documentJSON(from.Document())
	if err != nil {
		return err
	}
	toJSON, err := documentJSON(to.Document())
	if err != nil {
		return err
	}
	unified := difflib.UnifiedDiff{
		A:        difflib.SplitLines(fromJSON),
		B:        difflib.SplitLines(toJSON),
		FromFile: from.Name(),
		ToFile:   to.Name(),
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(unified)
	if err != nil {
		return err
	}
	output.FromID = from.ID()
	output.ToID = to.ID()
	output.Diff = text
	output.Identical = text == ""
	return nil
}

func documentJSON(document *model.Document) (string, error) {
	data, err := document.JSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
