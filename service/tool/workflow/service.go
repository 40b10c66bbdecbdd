// Package workflow exposes workflow lifecycle tools: create, load, save,
// list, activate, delete and clone.
package workflow

import (
	"context"
	"reflect"
	"strings"

	"github.com/comfygraph/comfygraph/model"
	"github.com/comfygraph/comfygraph/model/types"
	"github.com/comfygraph/comfygraph/service/dao/document"
	"github.com/comfygraph/comfygraph/service/oplog"
	"github.com/comfygraph/comfygraph/session"
)

const name = "workflow"

// Service implements the workflow lifecycle tools.
type Service struct {
	session   *session.Session
	documents document.Service
	log       *oplog.Log
}

// New creates the workflow lifecycle service.
func New(aSession *session.Session, documents document.Service, log *oplog.Log) *Service {
	return &Service{session: aSession, documents: documents, log: log}
}

// Name returns the service name.
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods.
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "create",
			Description: "Creates a new empty workflow and returns its id.",
			Input:       reflect.TypeOf(&CreateInput{}),
			Output:      reflect.TypeOf(&CreateOutput{}),
		},
		{
			Name:        "load",
			Description: "Loads a workflow document from a URL into the session.",
			Input:       reflect.TypeOf(&LoadInput{}),
			Output:      reflect.TypeOf(&LoadOutput{}),
		},
		{
			Name:        "save",
			Description: "Saves a workflow document to a URL.",
			Input:       reflect.TypeOf(&SaveInput{}),
			Output:      reflect.TypeOf(&SaveOutput{}),
		},
		{
			Name:        "list",
			Description: "Lists every workflow in the session.",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListOutput{}),
		},
		{
			Name:        "setActive",
			Description: "Sets the active workflow used by operations that omit a workflow id.",
			Input:       reflect.TypeOf(&SetActiveInput{}),
			Output:      reflect.TypeOf(&SetActiveOutput{}),
		},
		{
			Name:        "delete",
			Description: "Deletes a workflow from the session.",
			Input:       reflect.TypeOf(&DeleteInput{}),
			Output:      reflect.TypeOf(&DeleteOutput{}),
		},
		{
			Name:        "clone",
			Description: "Deep-copies a workflow under a new identity.",
			Input:       reflect.TypeOf(&CloneInput{}),
			Output:      reflect.TypeOf(&CloneOutput{}),
		},
	}
}

// Method returns the specified method.
func (s *Service) Method(methodName string) (types.Executable, error) {
	switch strings.ToLower(methodName) {
	case "create":
		return s.create, nil
	case "load":
		return s.load, nil
	case "save":
		return s.save, nil
	case "list":
		return s.list, nil
	case "setactive":
		return s.setActive, nil
	case "delete":
		return s.delete, nil
	case "clone":
		return s.clone, nil
	default:
		return nil, types.NewMethodNotFoundError(methodName)
	}
}

func (s *Service) create(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CreateInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*CreateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if input.Name == "" {
		input.Name = "Untitled"
	}
	workflowID := s.session.Create(input.Name, input.Description)
	s.log.Info("workflow.create", "created workflow "+input.Name,
		map[string]interface{}{"description": input.Description}, workflowID)

	output.WorkflowID = workflowID
	output.Name = input.Name
	output.Description = input.Description
	output.Status = "created"
	return nil
}

func (s *Service) load(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*LoadInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*LoadOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	doc, err := s.documents.Load(ctx, input.Location)
	if err != nil {
		return err
	}
	workflow, err := model.FromDocument(doc)
	if err != nil {
		return err
	}
	s.session.Add(workflow)
	if input.SetActive == nil || *input.SetActive {
		s.session.SetActive(workflow.ID())
	}
	s.log.Info("workflow.load", "loaded workflow from "+input.Location, nil, workflow.ID())

	output.WorkflowID = workflow.ID()
	output.Name = workflow.Name()
	output.NumNodes = workflow.NodeCount()
	output.NumLinks = workflow.LinkCount()
	output.IsActive = s.session.ActiveID() == workflow.ID()
	return nil
}

func (s *Service) save(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SaveInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SaveOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	if err = s.documents.Save(ctx, input.Location, workflow.Document()); err != nil {
		return err
	}
	s.log.Info("workflow.save", "saved workflow to "+input.Location, nil, workflow.ID())

	output.Status = "saved"
	output.Location = input.Location
	output.WorkflowID = workflow.ID()
	output.Name = workflow.Name()
	return nil
}

func (s *Service) list(ctx context.Context, in, out interface{}) error {
	output, ok := out.(*ListOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	output.Workflows = s.session.List()
	return nil
}

func (s *Service) setActive(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SetActiveInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SetActiveOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if !s.session.SetActive(input.WorkflowID) {
		return session.ErrWorkflowNotFound
	}
	output.Status = "active"
	output.WorkflowID = input.WorkflowID
	return nil
}

func (s *Service) delete(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*DeleteInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*DeleteOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if !s.session.Delete(input.WorkflowID) {
		return session.ErrWorkflowNotFound
	}
	s.log.Info("workflow.delete", "deleted workflow", nil, input.WorkflowID)
	output.Status = "deleted"
	output.WorkflowID = input.WorkflowID
	return nil
}

func (s *Service) clone(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*CloneInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*CloneOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	cloned := workflow.Clone()
	if input.NewName != "" {
		cloned.SetName(input.NewName)
	}
	s.session.Add(cloned)
	s.log.Info("workflow.clone", "cloned workflow "+workflow.Name(),
		map[string]interface{}{"cloned_from": workflow.ID()}, cloned.ID())

	output.WorkflowID = cloned.ID()
	output.Name = cloned.Name()
	output.ClonedFrom = workflow.ID()
	return nil
}
