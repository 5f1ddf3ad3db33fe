package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"rail/communication/server"
	"rail/experiments"
	"rail/gamemaster"
	"rail/generator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("rail failed")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "rail",
		Usage: "generate, judge and replay rail network instances",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "zerolog level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			genCommand(),
			scoreCommand(),
			replayCommand(),
			batchCommand(),
			serveCommand(),
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level, err := zerolog.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return ctx, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return ctx, nil
}

func genCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "write generated instances",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "seed", Usage: "first seed"},
			&cli.Uint64Flag{Name: "count", Value: 1, Usage: "number of consecutive seeds"},
			&cli.StringFlag{Name: "variant", Value: "A"},
			&cli.StringFlag{Name: "dir", Usage: "write <seed>.txt files here instead of stdout"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			seed, count := cmd.Uint64("seed"), cmd.Uint64("count")
			dir := cmd.String("dir")
			if dir == "" {
				for s := seed; s < seed+count; s++ {
					fmt.Print(generator.GenerateText(s, cmd.String("variant")))
				}
				return nil
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
			for s := seed; s < seed+count; s++ {
				path := filepath.Join(dir, experiments.SeedFile(s))
				if err := os.WriteFile(path, []byte(generator.GenerateText(s, cmd.String("variant"))), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
			}
			log.Info().Msgf("wrote %d instances to %s", count, dir)
			return nil
		},
	}
}

func readPair(cmd *cli.Command) (string, string, error) {
	if cmd.NArg() != 2 {
		return "", "", fmt.Errorf("expected <input> <output>, got %d arguments", cmd.NArg())
	}
	input, err := os.ReadFile(cmd.Args().Get(0))
	if err != nil {
		return "", "", err
	}
	output, err := os.ReadFile(cmd.Args().Get(1))
	if err != nil {
		return "", "", err
	}
	return string(input), string(output), nil
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "judge a solution",
		ArgsUsage: "<input> <output>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input, output, err := readPair(cmd)
			if err != nil {
				return err
			}
			score, err := gamemaster.Score(input, output)
			fmt.Printf("Score = %d\n", score)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return nil
		},
	}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "print money and income after every turn",
		ArgsUsage: "<input> <output>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input, output, err := readPair(cmd)
			if err != nil {
				return err
			}
			_, result, err := gamemaster.Replay(input, output)
			if err != nil {
				fmt.Println("Score = 0")
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			for _, snap := range result.Snapshots {
				stations, tracks := snap.Count()
				fmt.Printf("turn=%d money=%d income=%d served=%d stations=%d tracks=%d", snap.Turn, snap.Money, snap.Income, snap.Served, stations, tracks)
				if snap.Comment != "" {
					fmt.Printf(" # %q", snap.Comment)
				}
				fmt.Println()
			}
			fmt.Printf("Score = %d\n", result.Score)
			if result.Err != nil {
				fmt.Fprintln(os.Stderr, result.Err)
			}
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "judge a range of seeds and store the results as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "batch YAML config; defaults apply when empty"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := experiments.DefaultConfig()
			if path := cmd.String("config"); path != "" {
				loaded, err := experiments.LoadConfig(path)
				if err != nil {
					return fmt.Errorf("failed to load batch config: %w", err)
				}
				cfg = loaded
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			_, err := experiments.Run(ctx, cfg)
			return err
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the judge over HTTP and websocket",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: "localhost:8080", Sources: cli.EnvVars("RAIL_ADDR")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.NewServer(nil).Start(ctx, cmd.String("addr"))
		},
	}
}
