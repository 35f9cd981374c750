package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/generation"
	"github.com/jonathan/travel-planner/internal/llm"
	"github.com/jonathan/travel-planner/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status <itinerary-id>",
	Short: "Show the generation state of an itinerary",
	Long:  "Prints the itinerary, its latest generation job, and which stages have logged attempts, optionally with the full audit log.",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var (
	statusConfigPath string
	statusShowLogs   bool
)

func init() {
	statusCmd.Flags().StringVar(&statusConfigPath, "config", "", "Path to config.json file")
	statusCmd.Flags().BoolVarP(&statusShowLogs, "logs", "l", false, "Print the audit log, most recent first")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid itinerary id %q: %w", args[0], err)
	}

	cfg, err := loadCLIConfig(statusConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	engine := generation.NewEngine(database, database, database,
		func(context.Context, llm.Provider) (llm.Client, error) {
			return nil, fmt.Errorf("status command does not run generation")
		})

	status, err := engine.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	it, err := database.GetItinerary(ctx, id)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintItinerary(it)
	printer.PrintJobStatus(status.Job, status.Stages)

	if !statusShowLogs {
		return nil
	}

	logs, err := engine.ListLogs(ctx, id)
	if err != nil {
		return err
	}
	printer.PrintStageLogs(logs)
	return nil
}
