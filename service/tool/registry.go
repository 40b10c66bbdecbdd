// Package tool exposes graph operations as remotely callable, JSON-in and
// JSON-out tools. Services follow one calling convention; the dispatcher
// resolves "service.method" names, converts raw argument maps into each
// method's typed input and traces every invocation.
package tool

import (
	"reflect"
	"sync"

	"github.com/comfygraph/comfygraph/model/types"
	"github.com/viant/x"
)

// Types keeps the input/output struct types of every registered tool so that
// hosts can introspect or re-instantiate them by name.
type Types struct {
	x.Registry
}

// Register adds a data type to the registry.
func (t *Types) Register(dataType *x.Type) {
	t.Registry.Register(dataType)
}

// NewTypes creates an empty type registry.
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{Registry: *x.NewRegistry(options...)}
}

// Registry holds every tool service by name.
type Registry struct {
	types    *Types
	services map[string]types.Service
	names    []string
	mux      sync.RWMutex
}

// Types returns the data type registry.
func (r *Registry) Types() *Types {
	return r.types
}

// Lookup returns a service by name, or nil.
func (r *Registry) Lookup(name string) types.Service {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.services[name]
}

// Register adds a service and records its method input/output types.
func (r *Registry) Register(service types.Service) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if _, ok := r.services[service.Name()]; !ok {
		r.names = append(r.names, service.Name())
	}
	r.services[service.Name()] = service
	for _, signature := range service.Methods() {
		r.registerType(signature.Input)
		r.registerType(signature.Output)
	}
}

func (r *Registry) registerType(t reflect.Type) {
	if t == nil {
		return
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	r.types.Register(x.NewType(t))
}

// Services returns registered service names in registration order.
func (r *Registry) Services() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return append([]string{}, r.names...)
}

// NewRegistry creates an empty tool registry.
func NewRegistry(goTypes ...*x.Type) *Registry {
	registry := &Registry{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, t := range goTypes {
		if t != nil {
			registry.types.Register(t)
		}
	}
	return registry
}
