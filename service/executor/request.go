// Package executor translates a validated stack plus a user utterance into
// the single request the external execution service consumes, and carries
// the HTTP client that speaks to that boundary.
package executor

import (
	"context"

	"github.com/stackforge/genstack/model"
	"github.com/stackforge/genstack/service/secret"
	"github.com/stackforge/genstack/service/validation"
)

type (
	// Request is the JSON body of the execute call. It carries the literal
	// user utterance, every node's kind, identifier and configuration, and
	// every edge's endpoints. Canvas positions are execution-irrelevant and
	// omitted.
	Request struct {
		Query string         `json:"query"`
		Nodes []*NodePayload `json:"nodes"`
		Edges []*EdgePayload `json:"edges"`
	}

	// NodePayload is the wire form of one node.
	NodePayload struct {
		ID   string          `json:"id"`
		Type string          `json:"type"`
		Data NodeDataPayload `json:"data"`
	}

	// NodeDataPayload nests the configuration bag the way the execution
	// service expects it.
	NodeDataPayload struct {
		Config map[string]interface{} `json:"config"`
	}

	// EdgePayload is the wire form of one edge.
	EdgePayload struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}
)

// Configuration keys holding credentials; their values may reference an
// external secret resolved at build time.
var secretKeys = []string{"apiKey", "serpApi"}

// Builder composes execution requests. It performs no network I/O; given the
// same utterance and snapshot it always produces the same request, which
// keeps it testable independently of transport concerns.
type Builder struct {
	secrets *secret.Resolver
}

// BuilderOption customises a Builder.
type BuilderOption func(b *Builder)

// WithSecretResolver sets the resolver used for credential-valued fields.
func WithSecretResolver(resolver *secret.Resolver) BuilderOption {
	return func(b *Builder) { b.secrets = resolver }
}

// NewBuilder creates a request builder.
func NewBuilder(options ...BuilderOption) *Builder {
	result := &Builder{}
	for _, option := range options {
		option(result)
	}
	return result
}

// Build validates the snapshot and composes the execution request. A
// validation failure is returned as-is so callers can surface the reason;
// no request is produced in that case.
func (b *Builder) Build(ctx context.Context, utterance string, stack *model.Stack) (*Request, error) {
	if err := validation.Validate(stack); err != nil {
		return nil, err
	}
	request := &Request{
		Query: utterance,
		Nodes: make([]*NodePayload, 0, len(stack.Nodes)),
		Edges: make([]*EdgePayload, 0, len(stack.Edges)),
	}
	for _, node := range stack.Nodes {
		config, err := b.buildConfig(ctx, node.Data.Config)
		if err != nil {
			return nil, err
		}
		request.Nodes = append(request.Nodes, &NodePayload{
			ID:   node.ID,
			Type: string(node.Type),
			Data: NodeDataPayload{Config: config},
		})
	}
	for _, edge := range stack.Edges {
		request.Edges = append(request.Edges, &EdgePayload{
			Source: edge.Source,
			Target: edge.Target,
		})
	}
	return request, nil
}

func (b *Builder) buildConfig(ctx context.Context, source map[string]interface{}) (map[string]interface{}, error) {
	config := make(map[string]interface{}, len(source))
	for k, v := range source {
		config[k] = v
	}
	if b.secrets == nil {
		return config, nil
	}
	for _, key := range secretKeys {
		value, ok := config[key].(string)
		if !ok || !secret.IsReference(value) {
			continue
		}
		plain, err := b.secrets.Resolve(ctx, value)
		if err != nil {
			return nil, err
		}
		config[key] = plain
	}
	return config, nil
}
