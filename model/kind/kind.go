package kind

import (
	"errors"
	"fmt"
)

// Kind identifies one of the supported pipeline component types.
type Kind string

const (
	// UserQuery is the entry point for user input.
	UserQuery Kind = "userQuery"
	// KnowledgeBase retrieves context from uploaded documents.
	KnowledgeBase Kind = "knowledgeBase"
	// LlmEngine runs the query through a large language model.
	LlmEngine Kind = "llmEngine"
	// WebSearch augments the query with search engine results.
	WebSearch Kind = "webSearch"
	// Output displays the final response.
	Output Kind = "output"
)

// ErrUnknownKind is returned when a kind is not one of the supported
// component types.
var ErrUnknownKind = errors.New("kind: unknown node kind")

// Descriptor describes a node kind: display metadata, configuration defaults
// and connection capabilities. Descriptors are immutable; DefaultConfig
// returns a fresh copy on every call so that placed nodes never share state.
type Descriptor struct {
	Kind             Kind
	Label            string
	Description      string
	Defaults         map[string]interface{}
	AcceptsIncoming  bool
	ProducesOutgoing bool
}

var descriptors = map[Kind]*Descriptor{
	UserQuery: {
		Kind:             UserQuery,
		Label:            "User Query",
		Description:      "Entry point for user input",
		Defaults:         map[string]interface{}{"query": ""},
		AcceptsIncoming:  false,
		ProducesOutgoing: true,
	},
	KnowledgeBase: {
		Kind:        KnowledgeBase,
		Label:       "Knowledge Base",
		Description: "Upload and process documents",
		Defaults: map[string]interface{}{
			"searchQuery":    "",
			"documentId":     "",
			"fileName":       "",
			"chunkSize":      500,
			"apiKey":         "",
			"embeddingModel": "text-embedding-ada-002",
		},
		AcceptsIncoming:  true,
		ProducesOutgoing: true,
	},
	LlmEngine: {
		Kind:        LlmEngine,
		Label:       "LLM (OpenAI)",
		Description: "AI processing with GPT/Gemini",
		Defaults: map[string]interface{}{
			"model":       "GPT-4o-Mini",
			"apiKey":      "",
			"prompt":      "",
			"temperature": 0.75,
			"webSearch":   false,
			"serpApi":     "",
		},
		AcceptsIncoming:  true,
		ProducesOutgoing: true,
	},
	WebSearch: {
		Kind:        WebSearch,
		Label:       "Web Search",
		Description: "Search the web with SERP API",
		Defaults: map[string]interface{}{
			"searchQuery": "",
			"serpApi":     "",
		},
		AcceptsIncoming:  true,
		ProducesOutgoing: true,
	},
	Output: {
		Kind:             Output,
		Label:            "Output",
		Description:      "Display final response",
		Defaults:         map[string]interface{}{"outputText": ""},
		AcceptsIncoming:  true,
		ProducesOutgoing: false,
	},
}

// kinds holds the catalog order used by Kinds.
var kinds = []Kind{UserQuery, KnowledgeBase, LlmEngine, WebSearch, Output}

// Describe returns the descriptor for the supplied kind.
func Describe(aKind Kind) (*Descriptor, error) {
	descriptor, ok := descriptors[aKind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, aKind)
	}
	return descriptor, nil
}

// DefaultConfig returns a fresh copy of the kind's default configuration.
func DefaultConfig(aKind Kind) (map[string]interface{}, error) {
	descriptor, err := Describe(aKind)
	if err != nil {
		return nil, err
	}
	config := make(map[string]interface{}, len(descriptor.Defaults))
	for k, v := range descriptor.Defaults {
		config[k] = v
	}
	return config, nil
}

// Kinds returns all supported kinds in catalog order.
func Kinds() []Kind {
	result := make([]Kind, len(kinds))
	copy(result, kinds)
	return result
}

// IsValid reports whether the supplied kind is part of the catalog.
func IsValid(aKind Kind) bool {
	_, ok := descriptors[aKind]
	return ok
}
