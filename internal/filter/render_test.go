// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package filter

import "testing"

func TestDisplayTextScalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bool", true, "true"},
		{"integer float", float64(42), "42"},
		{"decimal float", 3.14, "3.14"},
		{"int", 7, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayText(tt.value); got != tt.want {
				t.Errorf("DisplayText(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestDisplayTextLocalizedField(t *testing.T) {
	tests := []struct {
		name  string
		value map[string]any
		want  string
	}{
		{
			name:  "prefers ru",
			value: map[string]any{"ru": "Продажи", "en": "Sales"},
			want:  "Продажи",
		},
		{
			name:  "falls back to en",
			value: map[string]any{"en": "Sales", "code": "S1"},
			want:  "Sales",
		},
		{
			name:  "falls back to name",
			value: map[string]any{"name": "Sales dept", "id": float64(3)},
			want:  "Sales dept",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayText(tt.value); got != tt.want {
				t.Errorf("DisplayText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayTextCompactFieldList(t *testing.T) {
	got := DisplayText(map[string]any{"city": "Berlin", "zip": "10115"})
	want := "city: Berlin, zip: 10115"
	if got != want {
		t.Errorf("DisplayText = %q, want %q", got, want)
	}
}

func TestDisplayTextCompactFieldListCapped(t *testing.T) {
	got := DisplayText(map[string]any{
		"a": "1", "b": "2", "c": "3", "d": "4", "e": "5",
	})
	want := "a: 1, b: 2, c: 3"
	if got != want {
		t.Errorf("DisplayText = %q, want %q", got, want)
	}
}

func TestDisplayTextArray(t *testing.T) {
	got := DisplayText([]any{
		"plain",
		map[string]any{"en": "Sales"},
		float64(3),
	})
	want := "plain, Sales, 3"
	if got != want {
		t.Errorf("DisplayText = %q, want %q", got, want)
	}
}

func TestDisplayTextStructuralFallback(t *testing.T) {
	// No localized or scalar fields: falls back to serialization.
	got := DisplayText(map[string]any{"nested": map[string]any{"x": float64(1)}})
	want := `{"nested":{"x":1}}`
	if got != want {
		t.Errorf("DisplayText = %q, want %q", got, want)
	}
}
