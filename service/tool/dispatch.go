package tool

import (
	"context"
	"fmt"
	"reflect"

	"github.com/comfygraph/comfygraph/service/oplog"
	"github.com/comfygraph/comfygraph/tracing"
	"github.com/viant/structology/conv"
)

// Descriptor advertises one callable tool.
type Descriptor struct {
	Service     string `json:"service"`
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`
}

// Dispatcher resolves tool names, adapts raw JSON argument maps to each
// method's typed input and invokes the method under a tracing span. It holds
// no graph logic of its own.
type Dispatcher struct {
	registry  *Registry
	converter *conv.Converter
	log       *oplog.Log
}

// NewDispatcher creates a dispatcher over the given registry. The operation
// log may be nil, in which case dispatch failures go unrecorded.
func NewDispatcher(registry *Registry, log *oplog.Log) *Dispatcher {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	return &Dispatcher{
		registry:  registry,
		converter: conv.NewConverter(options),
		log:       log,
	}
}

// Dispatch invokes service.method with the given arguments and returns the
// method's output struct. A failed call leaves no trace in any workflow.
func (d *Dispatcher) Dispatch(ctx context.Context, service, method string, args map[string]interface{}) (interface{}, error) {
	aService := d.registry.Lookup(service)
	if aService == nil {
		return nil, fmt.Errorf("%w: service %v", ErrToolNotFound, service)
	}
	signature := aService.Methods().Lookup(method)
	if signature == nil {
		return nil, fmt.Errorf("%w: %v.%v", ErrToolNotFound, service, method)
	}
	executable, err := aService.Method(method)
	if err != nil {
		return nil, err
	}

	input := newInstancePtr(signature.Input)
	if len(args) > 0 {
		if err = d.converter.Convert(args, input); err != nil {
			return nil, fmt.Errorf("invalid arguments for %v.%v: %w", service, method, err)
		}
	}
	output := newInstancePtr(signature.Output)

	name := service + "." + method
	ctx, span := tracing.StartSpan(ctx, name, "SERVER")
	err = executable(ctx, input, output)
	tracing.EndSpan(span, err)
	if err != nil {
		if d.log != nil {
			d.log.Error(name, err.Error(), nil, "")
		}
		return nil, err
	}
	return output, nil
}

// Descriptors lists every callable tool in registration order.
func (d *Dispatcher) Descriptors() []*Descriptor {
	var descriptors []*Descriptor
	for _, name := range d.registry.Services() {
		service := d.registry.Lookup(name)
		for _, signature := range service.Methods() {
			descriptors = append(descriptors, &Descriptor{
				Service:     name,
				Method:      signature.Name,
				Description: signature.Description,
			})
		}
	}
	return descriptors
}

// newInstancePtr creates a pointer to a fresh instance of the given type.
func newInstancePtr(t reflect.Type) interface{} {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface()
}
