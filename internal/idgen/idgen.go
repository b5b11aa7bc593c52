package idgen

import "github.com/google/uuid"

// NewFunc produces the next identifier suffix. Override in tests when a
// deterministic sequence is needed.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }
