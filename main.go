// Package main is the entry point for the askdb CLI application.
// It provides a conversational interface to a remote SQL agent service.
package main

import (
	"askdb/cli/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
