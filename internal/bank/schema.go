package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// manifestSchema validates the bank index before decoding. The builder
// guarantees this shape; a mismatch means a truncated or foreign file.
var manifestSchema = &schemaDef{
	name: "bank-manifest",
	definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meta": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"count": map[string]any{"type": "integer"},
				},
			},
			"banks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":            map[string]any{"type": "string", "minLength": 1},
						"name":          map[string]any{"type": "string"},
						"count":         map[string]any{"type": "integer"},
						"questionsPath": map[string]any{"type": "string", "minLength": 1},
						"sourceFile":    map[string]any{"type": "string"},
					},
					"required": []any{"id", "name", "questionsPath"},
				},
			},
		},
		"required": []any{"banks"},
	},
}

// questionsSchema validates a per-bank question file.
var questionsSchema = &schemaDef{
	name: "bank-questions",
	definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meta": map[string]any{"type": "object"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "string", "minLength": 1},
						"type": map[string]any{"type": "string", "enum": []any{"single", "multiple", "judge", "blank"}},
						"stem": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":                 "object",
							"additionalProperties": map[string]any{"type": "string"},
						},
						"answer":      map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
						"difficulty":  map[string]any{"type": "string"},
					},
					"required": []any{"id", "type", "stem"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

type schemaDef struct {
	name       string
	definition map[string]any
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validate checks raw JSON against def. A parse failure and a schema
// violation are both reported as errors; the caller treats either as a
// refused load, never a partial one.
func validate(def *schemaDef, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(def)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", def.name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(def *schemaDef) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(def.name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(def.definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", def.name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(def.name, compiled)
	return compiled, nil
}
