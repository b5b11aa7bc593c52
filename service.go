package genstack

import (
	"context"
	"fmt"

	"github.com/stackforge/genstack/model/kind"
	"github.com/stackforge/genstack/service/chat"
	"github.com/stackforge/genstack/service/editor"
	"github.com/stackforge/genstack/service/executor"
	"github.com/stackforge/genstack/service/secret"
	"github.com/stackforge/genstack/service/window"
	"github.com/stackforge/genstack/tracing"
)

// Service is the high-level façade: it wires the component catalog, the
// execution boundary client and the request builder, and mints editors,
// window managers and chat sessions for individual stacks.
type Service struct {
	config   *Config
	types    *kind.Types
	secrets  *secret.Resolver
	client   *executor.Client
	builder  *executor.Builder
	boundary chat.Executor
}

// New creates a service with the supplied options applied over defaults.
func New(options ...Option) *Service {
	result := &Service{}
	for _, option := range options {
		option(result)
	}
	result.ensureBaseSetup()
	return result
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.types == nil {
		s.types = kind.NewTypes()
	}
	if s.secrets == nil {
		s.secrets = secret.New()
	}
	if s.client == nil {
		s.client = executor.NewClient(s.config.Executor.BaseURL,
			executor.WithTimeout(s.config.Executor.Timeout()))
	}
	if s.boundary == nil {
		s.boundary = s.client
	}
	if s.builder == nil {
		s.builder = executor.NewBuilder(executor.WithSecretResolver(s.secrets))
	}
	if s.config.Tracing.Enabled {
		_ = tracing.Init(s.config.Tracing.ServiceName,
			s.config.Tracing.ServiceVersion, s.config.Tracing.OutputFile)
	}
}

// NewEditor creates an empty stack editor.
func (s *Service) NewEditor(name string) *editor.Service {
	return editor.New(name)
}

// NewWindowManager creates a configuration window manager bound to the
// supplied editor.
func (s *Service) NewWindowManager(editorService *editor.Service) *window.Service {
	return window.New(editorService)
}

// NewChatSession creates a chat session that executes the editor's current
// snapshot on every turn. Successful responses are mirrored into the
// outputText configuration of every output node.
func (s *Service) NewChatSession(editorService *editor.Service) *chat.Session {
	return chat.New(editorService.Snapshot, s.builder, s.boundary,
		chat.WithOnResponse(func(response string) {
			for _, node := range editorService.Snapshot().NodesOfKind(kind.Output) {
				_ = editorService.Configure(node.ID, "outputText", response)
			}
		}))
}

// UploadDocument uploads the document at the supplied location and stores
// the returned identity on the knowledge base node's configuration, the
// same way the editing surface records a completed upload.
func (s *Service) UploadDocument(ctx context.Context, editorService *editor.Service, nodeID, URL string) (*executor.UploadResult, error) {
	node, err := editorService.Node(nodeID)
	if err != nil {
		return nil, err
	}
	if node.Type != kind.KnowledgeBase {
		return nil, fmt.Errorf("node %s has kind %s, expected %s", nodeID, node.Type, kind.KnowledgeBase)
	}
	result, err := s.client.Upload(ctx, URL)
	if err != nil {
		return nil, err
	}
	if err = editorService.Configure(nodeID, "documentId", result.DocumentID); err != nil {
		return nil, err
	}
	if err = editorService.Configure(nodeID, "fileName", result.Filename); err != nil {
		return nil, err
	}
	return result, nil
}

// Types returns the per-kind configuration type registry.
func (s *Service) Types() *kind.Types {
	return s.types
}

// Config returns the service configuration.
func (s *Service) Config() *Config {
	return s.config
}
