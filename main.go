package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	cmdanalyze "incident-stats/command/analyze"
	cmdimport "incident-stats/command/import"
	cmdweb "incident-stats/command/web"
	"incident-stats/connectors/config"
	"incident-stats/connectors/logging"
)

// Incident aggregator for network operations exports.
// Usage:
//
//	incident-stats [--config config.yml] analyze [-i incidents.csv] [-o data] [--print]
//	incident-stats import [-i export.csv] [-o data]
//	incident-stats web [--addr :8080] [--data ./data]
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		slog.Error("command.failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	var (
		logCfg     logging.Config
		configPath string
	)

	flags := append(logCfg.Flags(), &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "YAML config file",
		Value:       config.DefaultPath,
		Sources:     cli.EnvVars("CONFIG_PATH"),
		Destination: &configPath,
	})

	return &cli.Command{
		Name:  "incident-stats",
		Usage: "Aggregate network incident exports into summaries and a weekly report",
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := logCfg.Configure()
			if err != nil {
				return ctx, err
			}
			slog.SetDefault(logger)
			logger.Debug("logger.configured", "logging", logCfg)
			return ctxlog.With(ctx, logger), nil
		},
		Commands: []*cli.Command{
			cmdanalyze.Command(&configPath),
			cmdimport.Command(&configPath),
			cmdweb.Command(&configPath),
		},
	}
}
