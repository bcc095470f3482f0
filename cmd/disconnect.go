// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// disconnectCmd asks the service to drop its database connection. The
// saved profile stays in the keychain so 'askdb connect' can reuse it.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the service from the database",

	RunE: func(cmd *cobra.Command, args []string) error {
		be, _, err := newBackend()
		if err != nil {
			return err
		}
		if err := be.DisconnectDB(cmd.Context()); err != nil {
			fmt.Println("❌ Disconnect failed.")
			return err
		}
		fmt.Println("✅ Service disconnected from the database.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}
