// Copyright (c) 2025 Askdb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"askdb/cli/internal/backend"
	"askdb/cli/internal/config"

	"atomicgo.dev/cursor"
)

// newBackend loads the config and builds the service client.
func newBackend() (backend.API, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	return backend.New(cfg.ServiceURL, backend.DefaultEndpoints()), cfg, nil
}

// startInlineSpinner starts a simple inline spinner animation on a
// single line: rotating frames followed by the text, updated in place.
// The terminal cursor is hidden while the spinner runs. Returns a
// function that stops the spinner and clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	cursor.Hide()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				if len(line) > 2000 {
					line = line[:2000]
				}
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		cursor.Show()
	}
}

// spinnerFrames is the stick-style animation used across commands.
var spinnerFrames = []string{"|", "/", "-", "\\"}
