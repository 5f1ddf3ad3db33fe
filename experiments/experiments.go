package experiments

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"rail/experiments/metrics"
	"rail/game"
	"rail/gamemaster"
	"rail/generator"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// RunBatch judges every seed of cfg and returns the records in seed order.
func RunBatch(ctx context.Context, cfg *Config) ([]metrics.RunRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	count := int(cfg.Seeds.To - cfg.Seeds.From + 1)
	records := make([]metrics.RunRecord, count)

	log.Info().Msgf("starting %s batch over seeds %d..%d with %d workers...", cfg.Name, cfg.Seeds.From, cfg.Seeds.To, cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < count; i++ {
		seed := cfg.Seeds.From + uint64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = runSeed(cfg, seed)
			log.Debug().Msgf("seed %d scored %d %s", seed, records[i].Score, records[i].Error)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s batch", cfg.Name)
	return records, nil
}

// Run executes the batch and stores runs.csv and summary.csv under cfg.ResultsDir.
func Run(ctx context.Context, cfg *Config) (metrics.Summary, error) {
	records, err := RunBatch(ctx, cfg)
	if err != nil {
		return metrics.Summary{}, err
	}
	summary := metrics.Summarize(records)

	writer, err := metrics.NewWriter(cfg.ResultsDir, cfg.Name)
	if err != nil {
		return summary, fmt.Errorf("failed to create batch writer: %w", err)
	}
	if err := writer.WriteRunRecords(records); err != nil {
		return summary, fmt.Errorf("failed to store run records: %w", err)
	}
	log.Info().Msg("stored run records")
	if err := writer.WriteSummary(summary); err != nil {
		return summary, fmt.Errorf("failed to store summary: %w", err)
	}
	log.Info().Msgf("stored summary in %s: runs=%d failed=%d total=%d mean=%.2f",
		writer.Dir(), summary.Runs, summary.Failed, summary.Total, summary.Mean)
	return summary, nil
}

// runSeed judges one seed. Missing or unreadable files score 0 like any other failure.
func runSeed(cfg *Config, seed uint64) metrics.RunRecord {
	record := metrics.RunRecord{Seed: seed}

	inst, err := loadInstance(cfg, seed)
	if err != nil {
		record.Error = err.Error()
		return record
	}
	out, err := os.ReadFile(filepath.Join(cfg.OutputDir, SeedFile(seed)))
	if err != nil {
		record.Error = fmt.Sprintf("failed to read output: %v", err)
		return record
	}
	actions, err := game.ParseActions(string(out))
	if err != nil {
		record.Error = err.Error()
		return record
	}

	result := gamemaster.Judge(inst, actions)
	record.Score = result.Score
	record.RunMetric = result.Metric
	if result.Err != nil {
		record.Error = result.Err.Error()
	}
	return record
}

func loadInstance(cfg *Config, seed uint64) (*game.Instance, error) {
	if cfg.InputDir == "" {
		return generator.Generate(seed, cfg.Variant), nil
	}
	b, err := os.ReadFile(filepath.Join(cfg.InputDir, SeedFile(seed)))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return game.ParseInstance(string(b))
}
