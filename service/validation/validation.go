// Package validation decides whether a stack snapshot is executable and,
// when it is not, why. Rules are checked in a fixed order and short-circuit
// at the first failure.
package validation

import (
	"fmt"

	"github.com/stackforge/genstack/model"
	"github.com/stackforge/genstack/model/kind"
)

// Reason identifies why a stack failed validation.
type Reason string

const (
	// Empty means the stack has no nodes at all.
	Empty Reason = "empty"
	// MissingUserQuery means no user query entry point is present.
	MissingUserQuery Reason = "missingUserQuery"
	// MissingLlmEngine means no LLM engine is present.
	MissingLlmEngine Reason = "missingLlmEngine"
	// MissingOutput means no output component is present.
	MissingOutput Reason = "missingOutput"
)

// Error is a recoverable, user-facing validation failure. Editing continues
// after it is reported; nothing about the stack is changed.
type Error struct {
	Reason Reason
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Reason {
	case Empty:
		return "invalid workflow: add components first"
	case MissingUserQuery:
		return "invalid workflow: missing required component User Query"
	case MissingLlmEngine:
		return "invalid workflow: missing required component LLM Engine"
	case MissingOutput:
		return "invalid workflow: missing required component Output"
	}
	return fmt.Sprintf("invalid workflow: %s", e.Reason)
}

// Validate checks the supplied snapshot against the executability rules, in
// order: non-empty, then presence of userQuery, llmEngine and output nodes.
// Knowledge base and web search components are optional. Edges are
// deliberately not inspected; the execution service performs its own graph
// walk, so disconnected mandatory nodes still validate.
func Validate(stack *model.Stack) error {
	if stack == nil || len(stack.Nodes) == 0 {
		return &Error{Reason: Empty}
	}
	if !stack.HasKind(kind.UserQuery) {
		return &Error{Reason: MissingUserQuery}
	}
	if !stack.HasKind(kind.LlmEngine) {
		return &Error{Reason: MissingLlmEngine}
	}
	if !stack.HasKind(kind.Output) {
		return &Error{Reason: MissingOutput}
	}
	return nil
}
