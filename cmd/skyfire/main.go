// Skyfire Core - Firework Show Generation
//
// This is the main entry point for the skyfire CLI. It loads a show plan
// from YAML, runs the generation engine, and prints the resulting cue
// table on stdout as tab-separated rows:
//
//	cue_number  cue_type  outputs  delay  execute_time
//
// The rows are the exact record downstream firing tables and executors
// consume; logs go to stderr so the two streams never mix.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/skyfire-core/internal/infrastructure/config"
	"github.com/nerrad567/skyfire-core/internal/infrastructure/logging"
	"github.com/nerrad567/skyfire-core/internal/random"
	"github.com/nerrad567/skyfire-core/internal/show"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	strict := flag.Bool("strict", false, "exit non-zero when the generated show fails verification")
	flag.Parse()

	if err := run(ctx, *strict); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation signals
//   - strict: Treat a failed verification report as an error
//
// Returns:
//   - error: nil on success, or error describing failure
func run(ctx context.Context, strict bool) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Skyfire Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Build the generator. Seed 0 means a clock-seeded, non-reproducible
	// show; any other seed replays the exact same cue list.
	rng := random.New(cfg.Generation.Seed)
	gen := show.NewGeneratorWithOptions(cfg.ShowConfig(), rng, log, cfg.Options())

	result, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating show: %w", err)
	}

	printRows(result.Rows())

	if !result.Report.Pass {
		for _, p := range result.Report.Problems {
			log.Warn("verification problem", "run_id", result.ID, "problem", p)
		}
		if strict {
			return fmt.Errorf("show failed verification with score %.1f", result.Score)
		}
	}

	return nil
}

// printRows writes the cue table to stdout, one tab-separated row per cue.
func printRows(rows []show.Row) {
	for _, r := range rows {
		fmt.Printf("%d\t%s\t%s\t%.3f\t%s\n",
			r.Number, r.Type, r.Outputs, r.Delay, r.ExecuteTime)
	}
}

// getConfigPath returns the config file path from SKYFIRE_CONFIG or the default.
func getConfigPath() string {
	if path := os.Getenv("SKYFIRE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
