// Package secret resolves credential-valued configuration fields (API keys,
// SERP keys) so that plain secrets never have to live inside a stack
// definition. A field value of the form "secret:<url>" is loaded and
// decrypted through viant/scy at request-build time; any other value passes
// through unchanged.
package secret

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/scy"
)

// Scheme prefixes configuration values that reference an encrypted secret.
const Scheme = "secret:"

// Resolver loads referenced secrets through viant/scy.
type Resolver struct {
	service *scy.Service
	key     string
}

// Option customises a Resolver.
type Option func(r *Resolver)

// WithKey sets the decryption key reference, e.g. "blowfish://default".
func WithKey(key string) Option {
	return func(r *Resolver) { r.key = key }
}

// New creates a resolver.
func New(options ...Option) *Resolver {
	result := &Resolver{service: scy.New()}
	for _, option := range options {
		option(result)
	}
	return result
}

// IsReference reports whether the value references an external secret.
func IsReference(value string) bool {
	return strings.HasPrefix(value, Scheme)
}

// Resolve returns the plain value for a configuration field. Non-reference
// values are returned as-is.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	if !IsReference(value) {
		return value, nil
	}
	sourceURL := strings.TrimPrefix(value, Scheme)
	resource := scy.NewResource(nil, sourceURL, r.key)
	loaded, err := r.service.Load(ctx, resource)
	if err != nil {
		return "", fmt.Errorf("failed to resolve secret from %s: %w", sourceURL, err)
	}
	return loaded.String(), nil
}
