// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package filter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// localizedFields are checked in order on structured values; the first
// non-empty one becomes the display text. Query results from JSONB
// columns commonly carry {"ru": ..., "en": ...} language pairs.
var localizedFields = []string{"ru", "en", "name"}

// maxCompactFields caps the field-list rendering of a structured value.
const maxCompactFields = 3

// DisplayText renders a cell value the way the result table shows it.
// Filtering operates on this text, so what the user sees is what the
// expression is matched against.
func DisplayText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case []any:
		parts := make([]string, 0, len(val))
		for _, e := range val {
			parts = append(parts, renderElement(e))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return renderStruct(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// renderElement renders one array element, recursing a single level
// into structured values.
func renderElement(v any) string {
	switch val := v.(type) {
	case map[string]any:
		return renderStruct(val)
	case []any:
		return structural(val)
	default:
		return DisplayText(val)
	}
}

// renderStruct renders a structured value: a localized field when one
// exists, else a compact field list, else the structural serialization.
func renderStruct(m map[string]any) string {
	for _, key := range localizedFields {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		if isScalar(m[k]) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return structural(m)
	}
	sort.Strings(keys)
	if len(keys) > maxCompactFields {
		keys = keys[:maxCompactFields]
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+DisplayText(m[k]))
	}
	return strings.Join(parts, ", ")
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, int, int64, json.Number:
		return true
	default:
		return false
	}
}

// structural is the fallback serialization for values with no better
// rendering, and the haystack for the global row filter.
func structural(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
