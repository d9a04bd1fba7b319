// Package main provides the entry point for the Talent Matcher CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_matcher",
	Short: "Talent Matcher candidate search",
	Long:  "Talent Matcher runs an agentic, tool-driven model conversation that evaluates internal employees against an open role and persists ranked candidates.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
