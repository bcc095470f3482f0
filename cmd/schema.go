// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var schemaRefresh bool

// schemaCmd fetches the database schema the service works against and
// prints a per-table summary.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the connected database schema",

	RunE: func(cmd *cobra.Command, args []string) error {
		be, _, err := newBackend()
		if err != nil {
			return err
		}

		schema, err := be.Schema(cmd.Context(), schemaRefresh)
		if err != nil {
			fmt.Println("❌ Could not fetch the schema. Is a database connected?")
			return err
		}

		printSchema(schema)
		return nil
	},
}

// printSchema renders the service's structured schema payload. The
// shape is {"tables": {name: {"columns": [{name, type}, ...]}}} with a
// metadata block we only use for the source note.
func printSchema(schema map[string]any) {
	tables, ok := schema["tables"].(map[string]any)
	if !ok || len(tables) == 0 {
		pterm.Warning.Println("Schema is empty.")
		return
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		table, _ := tables[name].(map[string]any)
		columns, _ := table["columns"].([]any)

		rows := pterm.TableData{{"column", "type"}}
		for _, c := range columns {
			col, _ := c.(map[string]any)
			colName, _ := col["name"].(string)
			colType, _ := col["type"].(string)
			rows = append(rows, []string{colName, colType})
		}

		pterm.DefaultSection.Println(name)
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	if meta, ok := schema["metadata"].(map[string]any); ok {
		if src, ok := meta["source"].(string); ok && src != "" {
			pterm.Printf("\nschema source: %s\n", src)
		}
	}
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaRefresh, "refresh", false, "Force a live schema reload on the service")
}
