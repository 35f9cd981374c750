package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/travel-planner/internal/db"
)

var (
	createConfigPath  string
	createTitle       string
	createDestination string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new itinerary",
	Long:  "Creates an empty itinerary record. Its content is filled in by the generation pipeline.",
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createConfigPath, "config", "", "Path to config.json file")
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Itinerary title (required)")
	createCmd.Flags().StringVarP(&createDestination, "destination", "d", "", "Trip destination")

	if err := createCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}

	rootCmd.AddCommand(createCmd)
}

func runCreate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(createConfigPath)
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

	it, err := database.CreateItinerary(ctx, createTitle, createDestination)
	if err != nil {
		return fmt.Errorf("failed to create itinerary: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Created itinerary %s (%s)\n", it.ID, it.Title)
	return nil
}
