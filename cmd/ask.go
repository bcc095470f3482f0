// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"askdb/cli/internal/errors"
	"askdb/cli/internal/health"
	"askdb/cli/internal/history"
	"askdb/cli/internal/httperrors"
	"askdb/cli/internal/interrupt"
	"askdb/cli/internal/protocol"
	"askdb/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// askCmd submits a single question and prints the answer. For a longer
// conversation, use 'askdb chat'.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the database one question",
	Args:  cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		ctx := cmd.Context()

		be, cfg, err := newBackend()
		if err != nil {
			return err
		}

		probe := func(ctx context.Context) bool {
			_, err := be.Health(ctx)
			return err == nil
		}
		monitor := health.NewMonitor(probe, time.Duration(cfg.ProbeIntervalSeconds)*time.Second)
		monitor.ForceCheck(ctx, false)

		store, err := history.NewStore(cfg.HistoryLimit)
		if err != nil {
			store = nil
		}

		client := protocol.NewClient(be, monitor, session.NewController(), interrupt.NewBroker(), newTerminalPrompter(), recorderOrNil(store))

		stopSpinner := startInlineSpinner(os.Stdout, "thinking", spinnerFrames, 120*time.Millisecond)
		res, err := client.Submit(ctx, question)
		stopSpinner()
		if err != nil {
			reportTurnError(err)
			return err
		}

		renderResult(res)
		return nil
	},
}

// recorderOrNil avoids handing the client a typed nil.
func recorderOrNil(store *history.Store) protocol.Recorder {
	if store == nil {
		return nil
	}
	return store
}

// reportTurnError prints a user-facing explanation for a failed turn.
func reportTurnError(err error) {
	switch errors.KindOf(err) {
	case errors.ConnectivityGate:
		pterm.Error.Println("Not connected to the askdb service.")
		pterm.Println("  Check that the service is running, then retry.")
	case errors.ProtocolExhausted:
		pterm.Error.Println("The service kept asking for input and never finished.")
		pterm.Println("  Try rephrasing the question or starting a new conversation.")
	default:
		_ = httperrors.FormatNetworkError(err, "asking the question")
	}
}

func init() {
	rootCmd.AddCommand(askCmd)
}
