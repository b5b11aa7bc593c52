package genstack

import (
	"github.com/stackforge/genstack/model/kind"
	"github.com/stackforge/genstack/service/chat"
	"github.com/stackforge/genstack/service/executor"
	"github.com/stackforge/genstack/service/secret"
)

// Option customises the Service.
type Option func(s *Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithTypes sets the per-kind configuration type registry.
func WithTypes(types *kind.Types) Option {
	return func(s *Service) { s.types = types }
}

// WithSecretResolver sets the resolver for credential-valued config fields.
func WithSecretResolver(resolver *secret.Resolver) Option {
	return func(s *Service) { s.secrets = resolver }
}

// WithExecutionClient replaces the HTTP client for the execution boundary.
func WithExecutionClient(client *executor.Client) Option {
	return func(s *Service) { s.client = client }
}

// WithBoundary replaces the execute boundary used by chat sessions; tests
// use it to stub the execution service without a network.
func WithBoundary(boundary chat.Executor) Option {
	return func(s *Service) { s.boundary = boundary }
}

// WithRequestBuilder replaces the execution request builder.
func WithRequestBuilder(builder *executor.Builder) Option {
	return func(s *Service) { s.builder = builder }
}
