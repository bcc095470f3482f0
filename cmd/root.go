// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for askdb.
// It implements subcommands for chatting with the SQL agent service,
// managing the database connection, and operator login using the Cobra
// framework, with a terminal UI built on pterm.
package cmd

import (
	"fmt"
	"os"

	"askdb/cli/internal/config"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "askdb",
	Short:         "Chat with your database through the askdb service",
	Long:          `askdb is a command-line client for the askdb SQL agent service: ask questions in plain language, review what the agent wants to do, and filter the results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Printf("askdb %s\nservice %s\n", Version, cfg.ServiceURL)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and configured service URL")
}
