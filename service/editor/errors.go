package editor

import "errors"

// Sentinel errors returned by the editor. Using sentinel variables allows
// callers to reliably detect error conditions via errors.Is instead of
// brittle string comparisons.

var (
	// ErrNodeNotFound is returned when the referenced node is not present in
	// the stack.
	ErrNodeNotFound = errors.New("editor: node not found")

	// ErrInvalidEndpoints is returned when an edge's endpoints coincide or
	// violate a node kind's connection capabilities.
	ErrInvalidEndpoints = errors.New("editor: invalid edge endpoints")
)
