// Package forms holds the static banking form templates the assistant can fill.
package forms

import "log/slog"

// GenericOpening is the acknowledgment instruction used when no form is selected.
const GenericOpening = "I will help users with banking forms, collecting information one question at a time."

// UnknownFormOpening is used when a form was named but is not registered.
const UnknownFormOpening = "Greet the user and ask which form they'd like to fill."

// Generic is returned for unknown form identifiers: no field list, open-ended collection.
var Generic = &Template{
	Opening:  GenericOpening,
	Greeting: "Hello! I can help you fill in a banking form. Which form would you like to fill today?",
}

// Registry maps form identifiers to templates. It is read-only after construction.
type Registry struct {
	order     []string
	templates map[string]*Template
}

// NewRegistry builds a registry from the given templates. Later duplicates win.
func NewRegistry(templates ...*Template) *Registry {
	r := &Registry{templates: make(map[string]*Template, len(templates))}
	for _, t := range templates {
		if t == nil || t.ID == "" {
			continue
		}
		if _, ok := r.templates[t.ID]; !ok {
			r.order = append(r.order, t.ID)
		}
		r.templates[t.ID] = t
	}
	return r
}

// Lookup returns the template for formID, or Generic when formID is unknown.
func (r *Registry) Lookup(formID string) *Template {
	if t, ok := r.templates[formID]; ok {
		return t
	}
	if formID != "" {
		slog.Debug("Unknown form identifier, using generic template", "form_id", formID)
	}
	return Generic
}

// Has reports whether formID is registered.
func (r *Registry) Has(formID string) bool {
	_, ok := r.templates[formID]
	return ok
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Templates returns the registered templates in registration order.
func (r *Registry) Templates() []*Template {
	out := make([]*Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}
