// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"askdb/cli/internal/interrupt"

	"github.com/pterm/pterm"
)

// terminalPrompter resolves interrupts by asking the operator on the
// terminal. It implements the protocol layer's Prompter.
type terminalPrompter struct {
	in *bufio.Reader
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(os.Stdin)}
}

func (p *terminalPrompter) Decide(_ context.Context, it interrupt.Interrupt) interrupt.Decision {
	switch it.Kind {
	case interrupt.TypeCacheReview:
		return p.decideCacheReview(it.CacheReview)
	case interrupt.TypeVisualizationReview:
		return p.decideVisualizationReview(it.VisualizationReview)
	default:
		return interrupt.EmptyDecision()
	}
}

// decideCacheReview asks whether a similar cached answer should be
// reused instead of re-running the query.
func (p *terminalPrompter) decideCacheReview(cr *interrupt.CacheReview) interrupt.Decision {
	pterm.Println()
	pterm.DefaultSection.Println("Similar question answered before")
	pterm.Printf("Question: %s\n", cr.Query)
	if cr.Similarity > 0 {
		pterm.Printf("Similarity: %.0f%%\n", cr.Similarity*100)
	}
	pterm.Println()
	pterm.DefaultBox.WithTitle("Cached answer").WithPadding(1).Println(cr.CachedResponse)
	pterm.Println()

	if p.confirm("Use the cached answer?") {
		return interrupt.Decision{"action": "use_cached"}
	}
	return interrupt.Decision{"action": "regenerate"}
}

// decideVisualizationReview shows the proposed chart script and asks
// whether to run it, letting the operator edit the code first.
func (p *terminalPrompter) decideVisualizationReview(vr *interrupt.VisualizationReview) interrupt.Decision {
	pterm.Println()
	pterm.DefaultSection.Println("The agent wants to draw a chart")
	pterm.Printf("Rows: %d, columns: %s\n", vr.RowCount, strings.Join(vr.Columns, ", "))
	if vr.PreviewError != "" {
		pterm.Warning.Printf("Preview failed: %s\n", vr.PreviewError)
	}
	pterm.Println()
	pterm.DefaultBox.WithTitle("Chart script").WithPadding(1).Println(vr.Code)
	pterm.Println()

	for {
		answer := p.ask("Run this script? [y]es / [e]dit / [n]o: ")
		switch strings.ToLower(answer) {
		case "y", "yes":
			return interrupt.Decision{"approved": true}
		case "e", "edit":
			code := p.editCode(vr.Code)
			return interrupt.Decision{"approved": true, "code": code}
		case "n", "no", "":
			return interrupt.Decision{"approved": false}
		}
	}
}

// editCode collects a replacement script, terminated by a line with a
// single dot. An empty edit keeps the original.
func (p *terminalPrompter) editCode(original string) string {
	pterm.Println("Enter the replacement script; finish with a single '.' on its own line:")
	var lines []string
	for {
		line, err := p.in.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return original
	}
	return strings.Join(lines, "\n")
}

func (p *terminalPrompter) confirm(question string) bool {
	answer := p.ask(question + " [y/N]: ")
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (p *terminalPrompter) ask(prompt string) string {
	fmt.Print(prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
