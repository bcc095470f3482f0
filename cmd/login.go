// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"askdb/cli/internal/auth"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginUsername string

// loginCmd identifies the operator to the askdb service. The service
// is tokenless; login records who is driving the session and persists
// that locally so other commands can show it.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Identify yourself to the askdb service",
	Long: `The login command sends your username and password to the askdb service and
stores the resulting login state securely in the OS keychain. The service does
not issue tokens; login identifies the operator for the session.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if st, err := auth.Load(); err == nil && st.LoggedIn {
			fmt.Printf("Already logged in as %s\n", st.Account)
			fmt.Println("Run 'askdb logout' first to switch accounts.")
			return nil
		}

		username := strings.TrimSpace(loginUsername)
		if username == "" {
			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Username: ")
			line, _ := reader.ReadString('\n')
			username = strings.TrimSpace(line)
		}
		if username == "" {
			return fmt.Errorf("username is required")
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		be, _, err := newBackend()
		if err != nil {
			return err
		}
		svc := auth.NewService(be)

		account, err := svc.Login(ctx, uuid.NewString(), username, password)
		if err != nil {
			fmt.Println("❌ Login failed.")
			return err
		}

		fmt.Printf("✅ Logged in as %s\n", account.User)
		if !account.Connected {
			fmt.Println("   No database connected yet. Run: askdb connect")
		}
		return nil
	},
}

// promptPassword reads a password without echoing it. Falls back to a
// plain line read when stdin is not a terminal (piped input in tests
// and scripts).
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username to log in with")
}
