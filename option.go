package comfygraph

import (
	"github.com/comfygraph/comfygraph/client/comfyui"
	"github.com/comfygraph/comfygraph/model/types"
	"github.com/comfygraph/comfygraph/service/dao/document"
	"github.com/comfygraph/comfygraph/service/oplog"
	"github.com/comfygraph/comfygraph/session"
	"github.com/viant/x"
)

// Option customises the service.
type Option func(s *Service)

// WithConfig sets the configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithSession sets the workflow session.
func WithSession(aSession *session.Session) Option {
	return func(s *Service) { s.session = aSession }
}

// WithDocumentDAO sets the workflow document store.
func WithDocumentDAO(documents document.Service) Option {
	return func(s *Service) { s.documents = documents }
}

// WithBackendClient sets the ComfyUI client.
func WithBackendClient(client *comfyui.Client) Option {
	return func(s *Service) { s.client = client }
}

// WithOperationLog sets the operation log.
func WithOperationLog(log *oplog.Log) Option {
	return func(s *Service) { s.log = log }
}

// WithExtensionTypes registers additional types with the tool registry.
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) { s.extensionTypes = types }
}

// WithExtensionServices registers additional tool services.
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) { s.extensionServices = services }
}
