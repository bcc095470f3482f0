// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"askdb/cli/internal/health"
	"askdb/cli/internal/history"
	"askdb/cli/internal/interrupt"
	"askdb/cli/internal/protocol"
	"askdb/cli/internal/session"
	"askdb/cli/internal/tabular"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// chatCmd starts an interactive conversation with the SQL agent. Each
// question is one turn; the last result's data table can be filtered
// in place with /filter and /find.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation with your database",
	Long: `The chat command opens a REPL against the askdb service. Type questions in
plain language; the agent translates them to SQL and answers with text plus a
data table. Slash commands work on the current conversation:

  /filter <column> <expr>  filter the last result (expr: 5..10, >=3, text)
  /find <term>             search the last result across all columns
  /clear                   drop all filters on the last result
  /new                     start a fresh conversation (new session)
  /schema                  show the connected database schema
  /history                 show recent questions
  /quit                    leave the chat`,
}

// runChat is assigned to chatCmd.RunE in init to avoid an
// initialization cycle (the REPL's /help prints chatCmd.Long).
func runChat(cmd *cobra.Command, args []string) error {
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
	monitor.Start(ctx)
	defer monitor.Stop()

	store, err := history.NewStore(cfg.HistoryLimit)
	if err != nil {
		store = nil
	}

	broker := interrupt.NewBroker()
	defer broker.CancelPending()

	client := protocol.NewClient(be, monitor, session.NewController(), broker, newTerminalPrompter(), recorderOrNil(store))

	// Give the first probe a moment so the gate reflects reality.
	waitForVerdict(ctx, monitor)
	if monitor.State() != health.StateConnected {
		pterm.Warning.Println("The askdb service is not reachable yet; questions will fail until it is.")
	}

	pterm.Printf("askdb chat — service %s. Type /help for commands, /quit to leave.\n", cfg.ServiceURL)

	repl := &chatSession{
		client:  client,
		backend: be,
		store:   store,
	}
	return repl.run(ctx)
}

// waitForVerdict blocks briefly until the monitor leaves Connecting.
func waitForVerdict(ctx context.Context, monitor *health.Monitor) {
	deadline := time.After(3 * time.Second)
	for monitor.State() == health.StateConnecting {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// chatSession holds the REPL's mutable state: the last result's
// dataset and the filters active on it.
type chatSession struct {
	client  *protocol.Client
	backend interface {
		Schema(ctx context.Context, refresh bool) (map[string]any, error)
	}
	store *history.Store

	lastData    tabular.Dataset
	filters     map[string]string
	globalTerm  string
	hasLastData bool
}

func (s *chatSession) run(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("askdb> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the chat like /quit.
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := s.command(ctx, line); quit {
				return nil
			}
			continue
		}

		s.submit(ctx, line)
	}
}

// command handles one slash command; returns true to leave the REPL.
func (s *chatSession) command(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/help":
		pterm.Println(chatCmd.Long)

	case "/new":
		s.client.Reset()
		s.resetFilters()
		s.hasLastData = false
		pterm.Println("Started a new conversation.")

	case "/schema":
		schema, err := s.backend.Schema(ctx, false)
		if err != nil {
			pterm.Error.Println("Could not fetch the schema. Is a database connected?")
			break
		}
		printSchema(schema)

	case "/history":
		s.printHistory()

	case "/filter":
		if len(fields) < 3 {
			pterm.Println("usage: /filter <column> <expression>")
			break
		}
		s.applyFilter(fields[1], strings.Join(fields[2:], " "))

	case "/find":
		if len(fields) < 2 {
			pterm.Println("usage: /find <term>")
			break
		}
		s.applyGlobal(strings.Join(fields[1:], " "))

	case "/clear":
		s.resetFilters()
		if s.hasLastData {
			renderDataset(s.lastData)
		}

	default:
		pterm.Printf("Unknown command %s. Type /help for the list.\n", fields[0])
	}
	return false
}

// submit runs one turn and remembers its dataset for filtering.
func (s *chatSession) submit(ctx context.Context, question string) {
	stopSpinner := startInlineSpinner(os.Stdout, "thinking", spinnerFrames, 120*time.Millisecond)
	res, err := s.client.Submit(ctx, question)
	stopSpinner()
	if err != nil {
		reportTurnError(err)
		return
	}

	s.lastData = renderResult(res)
	s.hasLastData = true
	s.resetFilters()
}

func (s *chatSession) applyFilter(column, expr string) {
	if !s.requireData() {
		return
	}
	if s.filters == nil {
		s.filters = make(map[string]string)
	}
	s.filters[column] = expr
	renderDataset(s.lastData.Filter(s.filters, s.globalTerm))
}

func (s *chatSession) applyGlobal(term string) {
	if !s.requireData() {
		return
	}
	s.globalTerm = term
	renderDataset(s.lastData.Filter(s.filters, s.globalTerm))
}

func (s *chatSession) requireData() bool {
	if !s.hasLastData || s.lastData.Empty() {
		pterm.Println("No result data to filter yet. Ask a question first.")
		return false
	}
	return true
}

func (s *chatSession) resetFilters() {
	s.filters = nil
	s.globalTerm = ""
}

func (s *chatSession) printHistory() {
	if s.store == nil {
		pterm.Println("History is unavailable.")
		return
	}
	entries := s.store.Entries()
	if len(entries) == 0 {
		pterm.Println("No questions asked yet.")
		return
	}
	for _, e := range entries {
		marker := " "
		if e.FromCache {
			marker = "*"
		}
		pterm.Printf("%s %s  (%d rows, %.2fs)\n", marker, e.Question, e.RowCount, e.ExecutionTime)
	}
	pterm.FgGray.Println("* answered from cache")
}

func init() {
	chatCmd.RunE = runChat
	rootCmd.AddCommand(chatCmd)
}
