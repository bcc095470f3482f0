// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"askdb/cli/internal/auth"
	"askdb/cli/internal/profile"

	"github.com/spf13/cobra"
)

var logoutKeepProfile bool

// logoutCmd clears the local login state. It also asks the service to
// drop its database connection; that call is best-effort and never
// blocks the local logout.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear stored state",
	Long: `The logout command clears your login state from the OS keychain and asks the
service to disconnect from the database. By default the saved connection
profile is removed too; pass --keep-profile to retain it for the next login.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		be, _, err := newBackend()
		if err != nil {
			return err
		}

		if err := auth.NewService(be).Logout(cmd.Context()); err != nil {
			return err
		}
		if !logoutKeepProfile {
			if err := profile.Clear(); err != nil {
				fmt.Println("⚠️  Logged out, but clearing the saved profile failed.")
				return err
			}
		}

		fmt.Println("✅ Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolVar(&logoutKeepProfile, "keep-profile", false, "Keep the saved connection profile")
}
