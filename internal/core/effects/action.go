// Package effects defines the audit vocabulary shared by every skill:
// actions describe side effects for the caller to apply, traces record
// each reasoning or execution step. Both are plain data.
package effects

import (
	"strings"

	"github.com/google/uuid"
)

// Kind separates actions the console applies to its own state from
// actions that reach an outside party.
type Kind string

const (
	KindInternal Kind = "internal"
	KindExternal Kind = "external"
)

// Action is a named side-effect descriptor, e.g. "ada.finance.invoiceCreated".
type Action struct {
	ID     string
	Kind   Kind
	Name   string
	Params map[string]any
}

// NewAction creates an action with a fresh ID.
func NewAction(kind Kind, name string, params map[string]any) Action {
	if params == nil {
		params = map[string]any{}
	}
	return Action{
		ID:     uuid.NewString(),
		Kind:   kind,
		Name:   name,
		Params: params,
	}
}

// Node returns the namespace of the action name ("ada.finance" for
// "ada.finance.invoiceCreated").
func (a Action) Node() string {
	if i := strings.LastIndex(a.Name, "."); i > 0 {
		return a.Name[:i]
	}
	return a.Name
}

// String returns a string param, or "" when absent or of another type.
func (a Action) String(key string) string {
	if s, ok := a.Params[key].(string); ok {
		return s
	}
	return ""
}

// Float returns a numeric param as float64.
func (a Action) Float(key string) float64 {
	switch v := a.Params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Int returns a numeric param as int.
func (a Action) Int(key string) int {
	return int(a.Float(key))
}

// Bool returns a boolean param.
func (a Action) Bool(key string) bool {
	b, _ := a.Params[key].(bool)
	return b
}

// Strings returns a []string param.
func (a Action) Strings(key string) []string {
	s, _ := a.Params[key].([]string)
	return s
}

// Find returns the first action with the given name.
func Find(actions []Action, name string) (Action, bool) {
	for _, a := range actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}
