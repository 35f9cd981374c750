// Package main provides the entry point for the Travel Planner CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "travel_agent",
	Short: "Travel Planner generation service",
	Long:  "Travel Planner builds AI-generated trip itineraries through a staged content pipeline, served over a REST API or driven from the command line.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
