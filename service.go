package comfygraph

import (
	"github.com/comfygraph/comfygraph/client/comfyui"
	"github.com/comfygraph/comfygraph/model/types"
	"github.com/comfygraph/comfygraph/service/dao/document"
	docfs "github.com/comfygraph/comfygraph/service/dao/document/fs"
	"github.com/comfygraph/comfygraph/service/oplog"
	"github.com/comfygraph/comfygraph/service/tool"
	"github.com/comfygraph/comfygraph/service/tool/backend"
	"github.com/comfygraph/comfygraph/service/tool/inspect"
	"github.com/comfygraph/comfygraph/service/tool/link"
	"github.com/comfygraph/comfygraph/service/tool/logs"
	"github.com/comfygraph/comfygraph/service/tool/node"
	wtool "github.com/comfygraph/comfygraph/service/tool/workflow"
	"github.com/comfygraph/comfygraph/session"

	"github.com/viant/x"
)

// Service wires the workflow session, document store, backend client and
// operation log into a registered tool surface.
type Service struct {
	config            *Config
	session           *session.Session
	documents         document.Service
	client            *comfyui.Client
	log               *oplog.Log
	registry          *tool.Registry
	dispatcher        *tool.Dispatcher
	extensionTypes    []*x.Type
	extensionServices []types.Service
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.registry = tool.NewRegistry(s.extensionTypes...)
	s.registry.Register(wtool.New(s.session, s.documents, s.log))
	s.registry.Register(node.New(s.session, s.log))
	s.registry.Register(link.New(s.session, s.log))
	s.registry.Register(inspect.New(s.session))
	s.registry.Register(logs.New(s.log))
	s.registry.Register(backend.New(s.client, s.config.Backend.TemplateDir, s.log))
	for _, service := range s.extensionServices {
		s.registry.Register(service)
	}
	s.dispatcher = tool.NewDispatcher(s.registry, s.log)
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.session == nil {
		s.session = session.New()
	}
	if s.log == nil {
		s.log = oplog.New(s.config.Log.Capacity)
	}
	if s.documents == nil {
		s.documents = docfs.New()
	}
	if s.client == nil {
		s.client = comfyui.New(s.config.Backend.URL)
	}
}

// RegisterExtensionServices adds tool services beyond the built-in surface.
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.registry.Register(services[i])
	}
}

// Dispatcher returns the tool dispatcher.
func (s *Service) Dispatcher() *tool.Dispatcher {
	return s.dispatcher
}

// Session returns the workflow session.
func (s *Service) Session() *session.Session {
	return s.session
}

// OperationLog returns the operation log.
func (s *Service) OperationLog() *oplog.Log {
	return s.log
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// New creates the service with the given options applied over defaults.
func New(options ...Option) *Service {
	ret := &Service{}
	ret.init(options)
	return ret
}
