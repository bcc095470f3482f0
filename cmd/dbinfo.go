// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"strings"

	"askdb/cli/internal/auth"
	"askdb/cli/internal/logging"
	"askdb/cli/internal/profile"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// dbinfoCmd displays the saved database connection with the password
// masked, so you can verify which database you're pointed at without
// exposing credentials.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show current database connection string",
	Long: `The dbinfo command displays the currently configured database connection string (DSN)
with the password masked for security. This helps verify which database you're connected to
without exposing sensitive credentials.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if !auth.IsLoggedIn() {
			pterm.Println("❌ You need to be logged in to view the database connection")
			pterm.Println("   Please run: askdb login")
			return nil
		}

		// Env var takes precedence over the keychain
		connString := strings.TrimSpace(os.Getenv("ASKDB_DSN"))
		if connString != "" {
			pterm.Println("Using DSN from ASKDB_DSN environment variable")
			pterm.Println()
		} else {
			p, err := profile.Load()
			if err != nil {
				pterm.Println("❌ Secure storage is not available on this system")
				return err
			}
			if p == nil {
				pterm.Println("⚠️  No database connection configured")
				pterm.Println("   Please run: askdb connect")
				return nil
			}
			connString = p.DSN()
			pterm.Println("Using DSN from OS keychain")
			if p.Name != "" {
				pterm.Printf("Profile: %s\n", p.Name)
			}
			pterm.Println()
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Println(logging.Mask(connString))
		pterm.Println()
		pterm.Println("To update this connection, run: askdb connect")
		pterm.Println()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
