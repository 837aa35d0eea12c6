package gen

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch regenerates whenever the configuration file changes, until
// the context is canceled. Editors often emit several write events
// per save, so events are debounced before regenerating.
//
// The configuration is reloaded on every change; a configuration that
// no longer validates is logged and skipped, keeping the previous
// output in place.
func Watch(ctx context.Context, configPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(configPath); err != nil {
		return err
	}
	slog.Info("watching config", "path", configPath)

	const debounce = 250 * time.Millisecond
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-w.Errors:
			slog.Error("watch error", "err", err)
		case ev := <-w.Events:
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			cfg, err := LoadConfig(configPath)
			if err != nil {
				slog.Error("reload config", "err", err)
				continue
			}
			if err := Generate(ctx, cfg); err != nil {
				slog.Error("generate", "err", err)
				continue
			}
			slog.Info("regenerated", "records", len(cfg.Records), "target", cfg.Target)
			// Some editors replace the file on save; re-add to keep
			// receiving events for the new inode.
			_ = w.Add(configPath)
		}
	}
}
