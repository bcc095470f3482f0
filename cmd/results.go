// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"askdb/cli/internal/filter"
	"askdb/cli/internal/protocol"
	"askdb/cli/internal/tabular"

	"github.com/pterm/pterm"
)

// maxDisplayRows caps the table printed for one result; filtering still
// works against the full dataset.
const maxDisplayRows = 50

// renderResult prints a turn's answer and its data table, returning the
// dataset so the caller can filter it afterwards.
func renderResult(res protocol.Result) tabular.Dataset {
	pterm.Println()
	pterm.Println(res.Response)

	ds := tabular.FromRows(res.Rows)
	if !ds.Empty() {
		pterm.Println()
		renderDataset(ds)
	}

	note := ""
	if res.FromCache {
		note = "answered from cache"
	}
	if res.ExecutionTime > 0 {
		if note != "" {
			note += ", "
		}
		note += pterm.Sprintf("%.2fs", res.ExecutionTime)
	}
	if note != "" {
		pterm.FgGray.Println(note)
	}
	pterm.Println()
	return ds
}

// renderDataset prints the dataset as a table, truncated to
// maxDisplayRows.
func renderDataset(d tabular.Dataset) {
	if d.Empty() {
		pterm.Warning.Println("No rows match.")
		return
	}

	data := pterm.TableData{d.Columns}
	shown := 0
	for _, row := range d.Rows {
		if shown >= maxDisplayRows {
			break
		}
		line := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			line[i] = filter.DisplayText(row[col])
		}
		data = append(data, line)
		shown++
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if len(d.Rows) > maxDisplayRows {
		pterm.FgGray.Printf("showing %d of %d rows\n", maxDisplayRows, len(d.Rows))
	} else {
		pterm.FgGray.Printf("%d rows\n", len(d.Rows))
	}
}
