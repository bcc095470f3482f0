// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tabular normalizes the service's query results for display.
// Result data arrives in one of three shapes: a bare row list,
// {"rows": [...]}, or {"data": [...]}. Columns are derived from the
// rows in first-seen order since the service sends no column list.
package tabular

import (
	"sort"

	"askdb/cli/internal/filter"
)

// Dataset is a normalized tabular result.
type Dataset struct {
	Columns []string
	Rows    []map[string]any
}

// Normalize converts any of the accepted result shapes into a Dataset.
// Unrecognized shapes yield an empty dataset rather than an error: a
// turn with no tabular payload is normal.
func Normalize(data any) Dataset {
	rows := extractRows(data)
	return Dataset{
		Columns: deriveColumns(rows),
		Rows:    rows,
	}
}

// FromRows builds a Dataset from already-decoded rows.
func FromRows(rows []map[string]any) Dataset {
	return Dataset{
		Columns: deriveColumns(rows),
		Rows:    rows,
	}
}

func extractRows(data any) []map[string]any {
	switch v := data.(type) {
	case []map[string]any:
		return v
	case []any:
		return rowsFromList(v)
	case map[string]any:
		if inner, ok := v["rows"]; ok {
			return extractRows(inner)
		}
		if inner, ok := v["data"]; ok {
			return extractRows(inner)
		}
	}
	return nil
}

func rowsFromList(list []any) []map[string]any {
	rows := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if row, ok := e.(map[string]any); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// deriveColumns collects column names across all rows in first-seen
// order, so a key missing from the first row still gets a column.
func deriveColumns(rows []map[string]any) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, k := range orderedKeys(row) {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	return columns
}

// orderedKeys returns map keys in a stable order. JSON objects lose
// their key order when decoded into a map, so columns are sorted
// within each row.
func orderedKeys(row map[string]any) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Filter returns the rows passing the per-column expressions and the
// global search term. Columns are preserved.
func (d Dataset) Filter(columnFilters map[string]string, global string) Dataset {
	kept := make([]map[string]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		if filter.MatchRow(row, columnFilters, global) {
			kept = append(kept, row)
		}
	}
	return Dataset{Columns: d.Columns, Rows: kept}
}

// Empty reports whether the dataset has no rows.
func (d Dataset) Empty() bool {
	return len(d.Rows) == 0
}
