package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/mbaumgart/perdiem/internal/config"
	"github.com/mbaumgart/perdiem/internal/prompts"
	"github.com/mbaumgart/perdiem/internal/workflow"
	"github.com/mbaumgart/perdiem/pkg/backend"
)

func main() {
	app := &cli.Command{
		Name:  "audit",
		Usage: "Audit a travel expense report PDF against the ticket backend",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Run the audit without writing the outcome to the ticket backend",
			},
		},
		ArgsUsage: "<report.pdf>",
		Action:    run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "audit: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: audit [flags] <report.pdf>")
	}

	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadAudit()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	be, err := backend.New(&cfg.Backend, logger)
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}
	if cmd.Bool("dry-run") {
		be = backend.ReadOnly(be)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	rt := &workflow.Runtime{
		Agent:   cfg.Agent,
		Backend: be,
		Prompts: prompts.Static(),
		Logger:  logger,
	}

	result, err := workflow.Execute(ctx, rt, filepath.Base(path), data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
