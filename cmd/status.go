// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"askdb/cli/internal/health"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// statusCmd probes the service and reports connection health plus the
// database the service is pointed at.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service and database connection status",

	RunE: func(cmd *cobra.Command, args []string) error {
		be, cfg, err := newBackend()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		probe := func(ctx context.Context) bool {
			_, err := be.Health(ctx)
			return err == nil
		}
		monitor := health.NewMonitor(probe, time.Duration(cfg.ProbeIntervalSeconds)*time.Second)

		state := monitor.ForceCheck(ctx, false)

		pterm.Printf("Service URL: %s\n", cfg.ServiceURL)
		switch state {
		case health.StateConnected:
			pterm.Success.Println("Service: reachable")
		default:
			pterm.Error.Println("Service: unreachable")
			return nil
		}

		status, err := be.DBStatus(ctx)
		if err != nil {
			pterm.Warning.Println("Database: status unavailable")
			return nil
		}
		if status.Connected {
			pterm.Success.Printf("Database: %s at %s (user %s)\n", status.Database, status.Host, status.User)
		} else {
			pterm.Warning.Println("Database: not connected (run 'askdb connect')")
			if status.Error != "" {
				pterm.Printf("  last error: %s\n", status.Error)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
