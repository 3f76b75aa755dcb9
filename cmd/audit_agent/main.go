// Package main provides the entry point for the HR audit engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "audit_agent",
	Short: "HR audit run-orchestration engine",
	Long:  "audit_agent executes the multi-stage HR audit pipeline over employee records, detecting duplicates, field conflicts, and policy violations, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
