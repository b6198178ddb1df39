package playground

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PayloadValidator validates gesture payloads against the action schema.
type PayloadValidator interface {
	Validate(def WidgetDefinition, action WidgetAction, payload map[string]any) error
}

// JSONSchemaValidator compiles action schemas and validates payload maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the payload satisfies the action schema.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, action WidgetAction, payload map[string]any) error {
	if len(action.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def.Key, action)
	if err != nil {
		return err
	}
	normalized := map[string]any{}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("playground: marshal payload for %s.%s: %w", def.Key, action.Name, err)
		}
		if err := json.Unmarshal(data, &normalized); err != nil {
			return fmt.Errorf("playground: normalize payload for %s.%s: %w", def.Key, action.Name, err)
		}
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("playground: payload for %s.%s failed validation: %w", def.Key, action.Name, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(key WidgetKey, action WidgetAction) (*jsonschema.Schema, error) {
	name := string(key) + "." + action.Name + ".json"
	v.mu.RLock()
	schema, ok := v.compiled[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(action.Schema)
	if err != nil {
		return nil, fmt.Errorf("playground: marshal schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("playground: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("playground: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}
