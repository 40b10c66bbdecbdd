// Package logs exposes the operation log tools: recent, stats and clear.
package logs

import (
	"context"
	"reflect"
	"strings"

	"github.com/comfygraph/comfygraph/model/types"
	"github.com/comfygraph/comfygraph/service/oplog"
)

const name = "logs"

// Service implements the operation log tools.
type Service struct {
	log *oplog.Log
}

// New creates the logs service.
func New(log *oplog.Log) *Service {
	return &Service{log: log}
}

// Name returns the service name.
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods.
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "recent",
			Description: "Returns the most recent operation log entries, optionally filtered.",
			Input:       reflect.TypeOf(&RecentInput{}),
			Output:      reflect.TypeOf(&RecentOutput{}),
		},
		{
			Name:        "stats",
			Description: "Returns operation log counters grouped by level and operation.",
			Input:       reflect.TypeOf(&StatsInput{}),
			Output:      reflect.TypeOf(&StatsOutput{}),
		},
		{
			Name:        "clear",
			Description: "Discards every operation log entry.",
			Input:       reflect.TypeOf(&ClearInput{}),
			Output:      reflect.TypeOf(&ClearOutput{}),
		},
	}
}

// Method returns the specified method.
func (s *Service) Method(methodName string) (types.Executable, error) {
	switch strings.ToLower(methodName) {
	case "recent":
		return s.recent, nil
	case "stats":
		return s.stats, nil
	case "clear":
		return s.clear, nil
	default:
		return nil, types.NewMethodNotFoundError(methodName)
	}
}

func (s *Service) recent(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*RecentInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*RecentOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	count := input.Count
	if count <= 0 {
		count = 20
	}
	output.Entries = s.log.Recent(count, oplog.Level(input.Level), input.WorkflowID)
	output.Count = len(output.Entries)
	return nil
}

func (s *Service) stats(ctx context.Context, in, out interface{}) error {
	output, ok := out.(*StatsOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	output.Stats = s.log.Stats()
	return nil
}

func (s *Service) clear(ctx context.Context, in, out interface{}) error {
	output, ok := out.(*ClearOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	s.log.Clear()
	output.Status = "cleared"
	return nil
}
