// Command sqlcrudgen generates record model code from a YAML
// declaration.
//
// Usage:
//
//	sqlcrudgen -config sqlcrud.yaml
//	sqlcrudgen -config sqlcrud.yaml -watch
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/sqlcrud/gen"
)

func main() {
	var (
		configPath = flag.String("config", "sqlcrud.yaml", "path to the generator configuration file")
		watch      = flag.Bool("watch", false, "regenerate when the configuration changes")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := gen.LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if err := gen.Generate(ctx, cfg); err != nil {
		slog.Error("generate", "err", err)
		os.Exit(1)
	}
	slog.Info("generated", "records", len(cfg.Records), "target", cfg.Target)

	if *watch {
		if err := gen.Watch(ctx, *configPath); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("watch", "err", err)
			os.Exit(1)
		}
	}
}
