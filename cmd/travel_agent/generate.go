package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/generation"
	"github.com/jonathan/travel-planner/internal/llm"
	"github.com/jonathan/travel-planner/internal/observability"
	"github.com/jonathan/travel-planner/internal/stages"
)

var generateCmd = &cobra.Command{
	Use:   "generate [itinerary-id...]",
	Short: "Run the generation pipeline for one or more itineraries",
	Long: `Runs the staged content pipeline for each itinerary id given on the command line.

Stages run sequentially within an itinerary; distinct itineraries run concurrently. Available stages: ` + strings.Join(stages.CanonicalOrder(), ", ") + `.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

var (
	generateConfigPath string
	generateStages     []string
	generateProvider   string
	generateExtra      string
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file")
	generateCmd.Flags().StringSliceVarP(&generateStages, "stages", "s", nil, "Stages to run (default: all, in pipeline order)")
	generateCmd.Flags().StringVarP(&generateProvider, "provider", "p", "", "Completion provider: gemini or openai (default: gemini)")
	generateCmd.Flags().StringVarP(&generateExtra, "extra", "e", "", "Free-text guidance appended to every stage prompt")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(generateConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	provider := generateProvider
	if provider == "" {
		provider = cfg.Provider
	}
	if _, err := llm.ParseProvider(provider); err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid itinerary id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmConfig := cfg.LLMConfig()
	engine := generation.NewEngine(database, database, database,
		func(ctx context.Context, p llm.Provider) (llm.Client, error) {
			return llm.NewClient(ctx, p, &llmConfig)
		})

	// The single-flight guard serializes runs per itinerary, so fan out
	// across itineraries only.
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if generateVerbose {
				fmt.Fprintf(os.Stdout, "Starting generation for %s\n", id)
			}
			result, err := engine.ExecuteRun(gctx, generation.RunRequest{
				ItineraryID: id,
				Stages:      generateStages,
				Provider:    provider,
				Extra:       generateExtra,
			})
			if err != nil {
				return fmt.Errorf("itinerary %s: %w", id, err)
			}
			fmt.Fprintf(os.Stdout, "Itinerary %s: job %s completed (%s)\n",
				id, result.JobID, strings.Join(result.Stages, ", "))
			if generateVerbose {
				if it, err := database.GetItinerary(gctx, id); err == nil {
					observability.NewPrinter(os.Stdout).PrintItinerary(it)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
