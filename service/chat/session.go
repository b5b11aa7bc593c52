// Package chat sequences user and assistant turns against one stack. A
// session allows a single in-flight request at a time; submissions arriving
// while one is outstanding are rejected, never queued.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/stackforge/genstack/model"
	"github.com/stackforge/genstack/service/executor"
	"github.com/stackforge/genstack/service/validation"
)

// ErrAlreadyPending is returned by Submit while a previous request has not
// settled yet.
var ErrAlreadyPending = errors.New("chat: request already pending")

// Role identifies who authored a turn.
type Role string

const (
	// RoleUser marks a turn authored by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn authored by the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is one transcript entry. Turns are appended in strict chronological
// order and never mutated afterwards. A failed request produces an
// assistant turn carrying the error description, indistinguishable in shape
// from a normal assistant turn so the transcript renders uniformly.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Executor abstracts the external execution boundary.
type Executor interface {
	Execute(ctx context.Context, request *executor.Request) (string, error)
}

// Snapshot supplies the stack a turn executes against, read at submit time.
type Snapshot func() *model.Stack

// Option customises a Session.
type Option func(s *Session)

// WithOnResponse attaches a callback invoked with every successful response
// before the assistant turn is appended.
func WithOnResponse(fn func(response string)) Option {
	return func(s *Session) { s.onResponse = fn }
}

// Session holds the transcript and the single-flight gate of one chat.
type Session struct {
	mu         sync.Mutex
	snapshot   Snapshot
	builder    *executor.Builder
	boundary   Executor
	turns      []Turn
	pending    bool
	onResponse func(response string)
}

// New creates a session. Each Submit builds a fresh request from the current
// snapshot, so graph edits between turns take effect immediately.
func New(snapshot Snapshot, builder *executor.Builder, boundary Executor, options ...Option) *Session {
	result := &Session{
		snapshot: snapshot,
		builder:  builder,
		boundary: boundary,
	}
	for _, option := range options {
		option(result)
	}
	return result
}

// Submit runs one user turn. Whitespace-only utterances are ignored without
// error. While a request is outstanding further submissions fail with
// ErrAlreadyPending and append nothing. The user turn is appended before
// dispatch; the assistant turn is appended when the call settles, carrying
// either the response or a human-readable failure description. A failed
// turn leaves the transcript and the stack exactly as they were, plus the
// one error turn.
func (s *Session) Submit(ctx context.Context, utterance string) error {
	if strings.TrimSpace(utterance) == "" {
		return nil
	}
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return ErrAlreadyPending
	}
	s.pending = true
	s.turns = append(s.turns, Turn{Role: RoleUser, Content: utterance})
	s.mu.Unlock()

	response, err := s.run(ctx, utterance)
	content := response
	if err != nil {
		content = errorContent(err)
	} else if s.onResponse != nil {
		s.onResponse(response)
	}

	s.mu.Lock()
	s.turns = append(s.turns, Turn{Role: RoleAssistant, Content: content})
	s.pending = false
	s.mu.Unlock()
	return nil
}

func (s *Session) run(ctx context.Context, utterance string) (string, error) {
	request, err := s.builder.Build(ctx, utterance, s.snapshot())
	if err != nil {
		return "", err
	}
	return s.boundary.Execute(ctx, request)
}

// Pending reports whether a request is outstanding.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Transcript returns a copy of all turns in chronological order.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Turn, len(s.turns))
	copy(result, s.turns)
	return result
}

// errorContent renders a failure the way the transcript shows it. Service
// detail and validation reasons surface verbatim; transport failures
// collapse to a generic message.
func errorContent(err error) string {
	var statusErr *executor.StatusError
	if errors.As(err, &statusErr) && statusErr.Detail != "" {
		return "Error: " + statusErr.Detail
	}
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		return "Error: " + validationErr.Error()
	}
	return "Error: Failed to process request"
}
