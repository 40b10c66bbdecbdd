// Package node exposes node tools: add, remove, update parameters, inspect
// and list.
package node

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/comfygraph/comfygraph/model/types"
	"github.com/comfygraph/comfygraph/service/oplog"
	"github.com/comfygraph/comfygraph/service/tool"
	"github.com/comfygraph/comfygraph/session"
)

const name = "node"

// Service implements the node tools.
type Service struct {
	session *session.Session
	log     *oplog.Log
}

// New creates the node service.
func New(aSession *session.Session, log *oplog.Log) *Service {
	return &Service{session: aSession, log: log}
}

// Name returns the service name.
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods.
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "add",
			Description: "Adds a node to a workflow and returns its id.",
			Input:       reflect.TypeOf(&AddInput{}),
			Output:      reflect.TypeOf(&AddOutput{}),
		},
		{
			Name:        "remove",
			Description: "Removes a node and every link attached to it.",
			Input:       reflect.TypeOf(&RemoveInput{}),
			Output:      reflect.TypeOf(&RemoveOutput{}),
		},
		{
			Name:        "updateParams",
			Description: "Replaces a node's widget values wholesale.",
			Input:       reflect.TypeOf(&UpdateParamsInput{}),
			Output:      reflect.TypeOf(&UpdateParamsOutput{}),
		},
		{
			Name:        "info",
			Description: "Returns a node's state including its incoming and outgoing connections.",
			Input:       reflect.TypeOf(&InfoInput{}),
			Output:      reflect.TypeOf(&InfoOutput{}),
		},
		{
			Name:        "list",
			Description: "Lists every node in the workflow in insertion order.",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListOutput{}),
		},
	}
}

// Method returns the specified method.
func (s *Service) Method(methodName string) (types.Executable, error) {
	switch strings.ToLower(methodName) {
	case "add":
		return s.add, nil
	case "remove":
		return s.remove, nil
	case "updateparams":
		return s.updateParams, nil
	case "info":
		return s.info, nil
	case "list":
		return s.list, nil
	default:
		return nil, types.NewMethodNotFoundError(methodName)
	}
}

func (s *Service) add(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*AddInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*AddOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	if input.NodeType == "" {
		return fmt.Errorf("node type was empty")
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	nodeID := workflow.AddNode(input.NodeType, input.Pos, input.WidgetsValues)
	added := workflow.Node(nodeID)
	s.log.Info("node.add", "added node "+input.NodeType,
		map[string]interface{}{"node_id": nodeID}, workflow.ID())

	output.NodeID = nodeID
	output.NodeType = input.NodeType
	output.Pos = added.Pos
	output.Status = "added"
	return nil
}

func (s *Service) remove(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*RemoveInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*RemoveOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	if !workflow.RemoveNode(input.NodeID) {
		return fmt.Errorf("%w: %v", tool.ErrNodeNotFound, input.NodeID)
	}
	s.log.Info("node.remove", "removed node",
		map[string]interface{}{"node_id": input.NodeID}, workflow.ID())

	output.NodeID = input.NodeID
	output.Status = "removed"
	return nil
}

func (s *Service) updateParams(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*UpdateParamsInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*UpdateParamsOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	if !workflow.UpdateNodeParams(input.NodeID, input.WidgetsValues) {
		return fmt.Errorf("%w: %v", tool.ErrNodeNotFound, input.NodeID)
	}
	s.log.Info("node.updateParams", "updated node parameters",
		map[string]interface{}{"node_id": input.NodeID}, workflow.ID())

	output.NodeID = input.NodeID
	output.WidgetsValues = input.WidgetsValues
	output.Status = "updated"
	return nil
}

func (s *Service) info(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*InfoInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*InfoOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	info := workflow.NodeInfo(input.NodeID)
	if info == nil {
		return fmt.Errorf("%w: %v", tool.ErrNodeNotFound, input.NodeID)
	}
	output.NodeInfo = info
	return nil
}

func (s *Service) list(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ListInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ListOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	output.WorkflowID = workflow.ID()
	output.Nodes = workflow.ListNodes()
	output.NumNodes = len(output.Nodes)
	return nil
}
