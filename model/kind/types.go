package kind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/x"
	"gopkg.in/yaml.v3"
)

type (
	// UserQueryConfig is the typed view of a userQuery node configuration.
	UserQueryConfig struct {
		Query string `json:"query,omitempty" yaml:"query,omitempty"`
	}

	// KnowledgeBaseConfig is the typed view of a knowledgeBase node configuration.
	KnowledgeBaseConfig struct {
		SearchQuery    string `json:"searchQuery,omitempty" yaml:"searchQuery,omitempty"`
		DocumentID     string `json:"documentId,omitempty" yaml:"documentId,omitempty"`
		FileName       string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
		ChunkSize      int    `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty"`
		APIKey         string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
		EmbeddingModel string `json:"embeddingModel,omitempty" yaml:"embeddingModel,omitempty"`
	}

	// LlmEngineConfig is the typed view of an llmEngine node configuration.
	LlmEngineConfig struct {
		Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
		APIKey      string  `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
		Prompt      string  `json:"prompt,omitempty" yaml:"prompt,omitempty"`
		Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
		WebSearch   bool    `json:"webSearch,omitempty" yaml:"webSearch,omitempty"`
		SerpAPI     string  `json:"serpApi,omitempty" yaml:"serpApi,omitempty"`
	}

	// WebSearchConfig is the typed view of a webSearch node configuration.
	WebSearchConfig struct {
		SearchQuery string `json:"searchQuery,omitempty" yaml:"searchQuery,omitempty"`
		SerpAPI     string `json:"serpApi,omitempty" yaml:"serpApi,omitempty"`
	}

	// OutputConfig is the typed view of an output node configuration. The
	// output text is populated by the execution result, never by the user.
	OutputConfig struct {
		OutputText string `json:"outputText,omitempty" yaml:"outputText,omitempty"`
	}
)

// Types registers the per-kind configuration prototypes so that callers can
// obtain a strongly typed view of a node's open configuration bag. The bag
// itself stays schemaless at the store level; unknown keys survive untouched.
type Types struct {
	x.Registry
}

// NewTypes creates a type registry populated with all catalog kinds.
func NewTypes(options ...x.RegistryOption) *Types {
	result := &Types{Registry: *x.NewRegistry(options...)}
	result.Register(x.NewType(reflect.TypeOf(UserQueryConfig{}), x.WithName(string(UserQuery))))
	result.Register(x.NewType(reflect.TypeOf(KnowledgeBaseConfig{}), x.WithName(string(KnowledgeBase))))
	result.Register(x.NewType(reflect.TypeOf(LlmEngineConfig{}), x.WithName(string(LlmEngine))))
	result.Register(x.NewType(reflect.TypeOf(WebSearchConfig{}), x.WithName(string(WebSearch))))
	result.Register(x.NewType(reflect.TypeOf(OutputConfig{}), x.WithName(string(Output))))
	return result
}

// DecodeConfig converts an open configuration bag into the typed prototype
// registered for the supplied kind. Scalar values arriving as strings (the
// editing surface submits every form field as text) are coerced to the
// prototype's field types; keys without a typed counterpart are dropped from
// the view but remain in the bag.
func (t *Types) DecodeConfig(aKind Kind, config map[string]interface{}) (interface{}, error) {
	aType := t.Lookup(string(aKind))
	if aType == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, aKind)
	}
	instance := reflect.New(aType.Type).Interface()
	if len(config) == 0 {
		return instance, nil
	}
	encoded, err := yaml.Marshal(normalize(aType.Type, config))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s config: %w", aKind, err)
	}
	if err = yaml.Unmarshal(encoded, instance); err != nil {
		return nil, fmt.Errorf("failed to decode %s config: %w", aKind, err)
	}
	return instance, nil
}

// normalize re-types string values whose destination field is not a string.
// A text value like "0.25" or "true" is parsed with yaml scalar rules before
// it meets the typed field; values destined for string fields, values that
// are not text, and keys without a typed counterpart pass through untouched.
func normalize(target reflect.Type, config map[string]interface{}) map[string]interface{} {
	fields := make(map[string]reflect.Kind, target.NumField())
	for i := 0; i < target.NumField(); i++ {
		field := target.Field(i)
		name := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if name == "" {
			name = strings.ToLower(field.Name[:1]) + field.Name[1:]
		}
		fields[name] = field.Type.Kind()
	}
	result := make(map[string]interface{}, len(config))
	for k, v := range config {
		text, isText := v.(string)
		fieldKind, known := fields[k]
		if !isText || !known || fieldKind == reflect.String {
			result[k] = v
			continue
		}
		var scalar interface{}
		if err := yaml.Unmarshal([]byte(text), &scalar); err != nil {
			result[k] = v
			continue
		}
		result[k] = scalar
	}
	return result
}
