// Package record holds the flat field-name to string-value form record.
package record

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Record is a partially or fully collected form: field name to string value.
type Record map[string]string

// Clone returns an independent copy. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}

// Keys returns the field names in sorted order.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// Merge applies fields on top of current as an RFC 7386 merge patch: keys in
// fields overwrite, keys absent from fields are retained. current is not modified.
func Merge(current, fields Record) (Record, error) {
	if len(fields) == 0 {
		return current.Clone(), nil
	}
	if len(current) == 0 {
		return fields.Clone(), nil
	}

	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current record: %w", err)
	}
	patchJSON, err := sonic.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record fields: %w", err)
	}

	mergedJSON, err := jsonpatch.MergePatch(currentJSON, patchJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to apply merge patch: %w", err)
	}

	var merged Record
	if err := sonic.Unmarshal(mergedJSON, &merged); err != nil {
		return nil, fmt.Errorf("failed to unmarshal merged record: %w", err)
	}
	return merged, nil
}

// FromObject converts a decoded JSON object into a Record, turning every value
// into its string form.
func FromObject(obj map[string]any) Record {
	out := make(Record, len(obj))
	for k, v := range obj {
		out[k] = Stringify(v)
	}
	return out
}

// Stringify renders a decoded JSON value as a record string. Strings pass
// through, json.Number keeps its literal digits, floats drop trailing zeros,
// null becomes "", and nested values are re-encoded as JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case fmt.Stringer:
		return val.String()
	default:
		encoded, err := sonic.MarshalString(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return encoded
	}
}
