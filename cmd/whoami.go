// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"askdb/cli/internal/auth"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the identity the service holds for the current
// operator, falling back to local state when the service is down.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged in operator",

	RunE: func(cmd *cobra.Command, args []string) error {
		be, _, err := newBackend()
		if err != nil {
			return err
		}

		account, err := auth.NewService(be).WhoAmI(cmd.Context())
		if err != nil {
			fmt.Println("Not logged in. Run: askdb login")
			return nil
		}

		fmt.Printf("Logged in as %s\n", account.User)
		if account.Connected {
			fmt.Println("Database: connected")
		} else {
			fmt.Println("Database: not connected (run 'askdb connect')")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
