// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tabular

import "testing"

func TestNormalizeShapes(t *testing.T) {
	row := map[string]any{"id": float64(1), "name": "ACME"}

	tests := []struct {
		name string
		data any
	}{
		{"bare list", []any{row}},
		{"rows wrapper", map[string]any{"rows": []any{row}}},
		{"data wrapper", map[string]any{"data": []any{row}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Normalize(tt.data)
			if len(d.Rows) != 1 {
				t.Fatalf("rows = %d, want 1", len(d.Rows))
			}
			if d.Rows[0]["name"] != "ACME" {
				t.Errorf("row = %v", d.Rows[0])
			}
			if len(d.Columns) != 2 {
				t.Errorf("columns = %v, want id and name", d.Columns)
			}
		})
	}
}

func TestNormalizeUnrecognizedShape(t *testing.T) {
	for _, data := range []any{nil, "text", float64(3), map[string]any{"other": 1}} {
		d := Normalize(data)
		if !d.Empty() {
			t.Errorf("Normalize(%v) produced rows %v, want none", data, d.Rows)
		}
	}
}

func TestColumnsFirstSeenOrder(t *testing.T) {
	d := FromRows([]map[string]any{
		{"b": 1, "a": 2},
		{"c": 3, "a": 4},
	})

	want := []string{"a", "b", "c"}
	if len(d.Columns) != len(want) {
		t.Fatalf("columns = %v, want %v", d.Columns, want)
	}
	for i := range want {
		if d.Columns[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, d.Columns[i], want[i])
		}
	}
}

func TestFilterKeepsMatchingRows(t *testing.T) {
	d := FromRows([]map[string]any{
		{"id": float64(1), "city": "Berlin"},
		{"id": float64(2), "city": "Paris"},
		{"id": float64(3), "city": "Berlin"},
	})

	got := d.Filter(map[string]string{"city": "berlin"}, "")
	if len(got.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(got.Rows))
	}

	got = d.Filter(map[string]string{"id": ">1"}, "berlin")
	if len(got.Rows) != 1 || got.Rows[0]["id"] != float64(3) {
		t.Errorf("rows = %v, want only id 3", got.Rows)
	}

	if len(got.Columns) != 2 {
		t.Errorf("columns lost by filtering: %v", got.Columns)
	}
}
