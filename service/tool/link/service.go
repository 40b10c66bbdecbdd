// Package link exposes link tools: connect and disconnect.
package link

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

const name = "link"

// Service implements the link tools.
type Service struct {
	session *session.Session
	log     *oplog.Log
}

// New creates the link service.
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
			Name:        "connect",
			Description: "Connects an output slot to an input slot, growing slots on demand.",
			Input:       reflect.TypeOf(&ConnectInput{}),
			Output:      reflect.TypeOf(&ConnectOutput{}),
		},
		{
			Name:        "disconnect",
			Description: "Removes a link by id and detaches both endpoints.",
			Input:       reflect.TypeOf(&DisconnectInput{}),
			Output:      reflect.TypeOf(&DisconnectOutput{}),
		},
	}
}

// Method returns the specified method.
func (s *Service) Method(methodName string) (types.Executable, error) {
	switch strings.ToLower(methodName) {
	case "connect":
		return s.connect, nil
	case "disconnect":
		return s.disconnect, nil
	default:
		return nil, types.NewMethodNotFoundError(methodName)
	}
}

func (s *Service) connect(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ConnectInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ConnectOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	dataType := input.DataType
	if dataType == "" {
		dataType = "*"
	}
	linkID, ok := workflow.ConnectNodes(input.OriginID, input.OriginSlot, input.TargetID, input.TargetSlot, dataType)
	if !ok {
		return fmt.Errorf("%w: %v[%v] -> %v[%v]", tool.ErrConnectionFailed,
			input.OriginID, input.OriginSlot, input.TargetID, input.TargetSlot)
	}
	s.log.Info("link.connect",
		fmt.Sprintf("connected %v[%v] -> %v[%v]", input.OriginID, input.OriginSlot, input.TargetID, input.TargetSlot),
		map[string]interface{}{"link_id": linkID}, workflow.ID())

	output.LinkID = linkID
	output.OriginID = input.OriginID
	output.OriginSlot = input.OriginSlot
	output.TargetID = input.TargetID
	output.TargetSlot = input.TargetSlot
	output.DataType = dataType
	output.Status = "connected"
	return nil
}

func (s *Service) disconnect(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*DisconnectInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*DisconnectOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	workflow, err := s.session.Lookup(input.WorkflowID)
	if err != nil {
		return err
	}
	if !workflow.DisconnectNodes(input.LinkID) {
		return fmt.Errorf("%w: %v", tool.ErrLinkNotFound, input.LinkID)
	}
	s.log.Info("link.disconnect", "disconnected link",
		map[string]interface{}{"link_id": input.LinkID}, workflow.ID())

	output.LinkID = input.LinkID
	output.Status = "disconnected"
	return nil
}
