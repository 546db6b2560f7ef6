package forms

import (
	"fmt"
	"strings"
)

// Field describes one key the assistant has to collect for a form.
type Field struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Optional    bool     `json:"optional,omitempty"`
	FixedDigits int      `json:"fixed_digits,omitempty"`
	FixedLength int      `json:"fixed_length,omitempty"`
	MaxLength   int      `json:"max_length,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Format      string   `json:"format,omitempty"`
	Default     string   `json:"default,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// Constraints renders the field rules as a short English phrase.
func (f Field) Constraints() string {
	var parts []string
	if f.Optional {
		parts = append(parts, "optional")
	} else {
		parts = append(parts, "required")
	}
	if f.FixedDigits > 0 {
		parts = append(parts, fmt.Sprintf("exactly %d digits", f.FixedDigits))
	}
	if f.FixedLength > 0 {
		parts = append(parts, fmt.Sprintf("exactly %d characters", f.FixedLength))
	}
	if f.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("at most %d characters", f.MaxLength))
	}
	if len(f.Enum) > 0 {
		parts = append(parts, "one of: "+strings.Join(f.Enum, " / "))
	}
	if f.Format != "" {
		parts = append(parts, "format "+f.Format)
	}
	if f.Default != "" {
		parts = append(parts, fmt.Sprintf("defaults to %q", f.Default))
	}
	if f.Note != "" {
		parts = append(parts, f.Note)
	}
	return strings.Join(parts, "; ")
}

// Pair is one key/value entry of an ordered example record.
type Pair struct {
	Key   string
	Value string
}

// Template is the immutable schema for one kind of form.
type Template struct {
	ID            string
	Title         string
	FormType      string
	Fields        []Field
	Denominations []string
	Example       []Pair
	Opening       string
	Greeting      string
	Notes         []string
}

// Generic reports whether t is the open-ended fallback template.
func (t *Template) Generic() bool {
	return t.ID == ""
}

// Field returns the field with the given key.
func (t *Template) Field(key string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// FieldKeys returns the field keys in declaration order.
func (t *Template) FieldKeys() []string {
	keys := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// DenominationKeys returns the flat record keys mandated by the template's
// denomination list, e.g. denom_500_qty.
func (t *Template) DenominationKeys() []string {
	keys := make([]string, 0, len(t.Denominations))
	for _, d := range t.Denominations {
		keys = append(keys, DenominationKey(d))
	}
	return keys
}

// DenominationKey maps a breakdown key ("500", "coins") to its flat record key.
func DenominationKey(unit string) string {
	return "denom_" + unit + "_qty"
}
