// Package model contains the in-memory representation of a visual GenAI
// pipeline: the placed nodes, the directed edges between them and the
// snapshot type the editing surface hands to validation and execution.
//
// The `kind` sub-package holds the static catalog of supported component
// types together with their configuration defaults and typed config views.
// The root model package aggregates those building blocks so that they can
// be referenced from other parts of the code base with a single import.
package model
