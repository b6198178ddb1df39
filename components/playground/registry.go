package playground

import (
	"fmt"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// WidgetDefinition describes one practice target in the catalog.
type WidgetDefinition struct {
	Key           WidgetKey      `json:"key" yaml:"key"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string         `json:"category,omitempty" yaml:"category,omitempty"`
	DefaultStatus string         `json:"default_status" yaml:"default_status"`
	Delayable     bool           `json:"delayable" yaml:"delayable"`
	DOMID         string         `json:"dom_id,omitempty" yaml:"dom_id,omitempty"`
	Actions       []WidgetAction `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// WidgetAction is a gesture a widget accepts together with its payload schema.
type WidgetAction struct {
	Name   string         `json:"name" yaml:"name"`
	Schema map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Action looks up an action by name.
func (def WidgetDefinition) Action(name string) (WidgetAction, bool) {
	for _, action := range def.Actions {
		if action.Name == name {
			return action, true
		}
	}
	return WidgetAction{}, false
}

// ElementID returns the DOM id, deriving one from the key when unset.
func (def WidgetDefinition) ElementID() string {
	if def.DOMID != "" {
		return def.DOMID
	}
	return def.Key.DOMID()
}

// Catalog stores widget definitions.
type Catalog interface {
	RegisterDefinition(def WidgetDefinition) error
	Definition(key WidgetKey) (WidgetDefinition, bool)
	Definitions() []WidgetDefinition
}

// WidgetHook lets packages adjust the catalog during init().
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook executed against new registries.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements Catalog with hook + manifest support.
type Registry struct {
	mu          sync.RWMutex
	definitions map[WidgetKey]WidgetDefinition
}

// NewRegistry builds a registry with the default catalog and applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{definitions: map[WidgetKey]WidgetDefinition{}}
	for _, def := range DefaultWidgetDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes registered widget hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores or replaces a definition. Only keys from the
// closed key set are accepted.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if def.Key == "" {
		return goerrors.New("widget definition key is required", goerrors.CategoryValidation)
	}
	if !def.Key.Valid() {
		return goerrors.New(fmt.Sprintf("widget definition key %q is not a known widget", def.Key), goerrors.CategoryValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Key] = def
	return nil
}

// Definition fetches a widget definition by key.
func (r *Registry) Definition(key WidgetKey) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[key]
	return def, ok
}

// Definitions returns all definitions in widget key order.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, key := range widgetKeys {
		if def, ok := r.definitions[key]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// DefaultStatuses maps every key to the default status of its definition.
func DefaultStatuses(catalog Catalog) map[WidgetKey]string {
	out := make(map[WidgetKey]string, len(widgetKeys))
	for _, def := range catalog.Definitions() {
		out[def.Key] = def.DefaultStatus
	}
	return out
}
