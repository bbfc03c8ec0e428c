package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/metrics"
	"github.com/gogpu/fx/preset"
)

// WatchCmd runs a frame loop and re-applies a preset whenever it changes.
// Each frame applies at most one pending step.
type WatchCmd struct {
	Preset   string        `arg:"" type:"existingfile" help:"Preset file to watch"`
	Output   string        `short:"o" help:"PNG rewritten after every rendered frame (defaults to the configured output)"`
	Frame    time.Duration `default:"33ms" help:"Frame interval"`
	Debounce time.Duration `default:"200ms" help:"Quiet period before a changed preset is reloaded"`
}

// Run implements the watch command.
func (c *WatchCmd) Run(g *Globals) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rec := metrics.NewPrometheusRecorder(nil)
	if addr := g.cfg.Metrics.Addr; addr != "" {
		stop := serveMetrics(addr, g.cfg.Metrics.Path, rec)
		defer stop()
	}

	d, err := newDemo(g.cfg, rec)
	if err != nil {
		return err
	}
	defer d.close()

	initial, err := preset.Load(c.Preset)
	if err != nil {
		return err
	}
	pending := initial.Requests()

	w, err := preset.Watch(ctx, c.Preset, preset.WithDebounce(c.Debounce))
	if err != nil {
		return err
	}
	defer w.Close()

	out := c.Output
	if out == "" {
		out = g.cfg.Output
	}

	errs := w.Errors()
	ticker := time.NewTicker(c.Frame)
	defer ticker.Stop()

	slog.Info("Watching preset", "path", w.Path(), "frame", c.Frame)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping")
			return nil

		case p, ok := <-w.Presets():
			if !ok {
				return nil
			}
			slog.Info("Preset changed", "name", p.Name, "steps", len(p.Steps))
			pending = p.Requests()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("Preset rejected", "error", err)

		case <-ticker.C:
			req := fx.Request{}
			if len(pending) > 0 {
				req, pending = pending[0], pending[1:]
			}
			frames := d.scene.Frames()
			if err := d.apply(req); err != nil {
				slog.Error("Frame failed", "error", err)
				continue
			}
			if d.scene.Frames() == frames {
				continue
			}
			if err := d.save(out); err != nil {
				return err
			}
			slog.Debug("Frame saved", "path", out, "active", d.pipeline.Active())
		}
	}
}

// serveMetrics exposes rec on addr and returns a function that shuts the
// server down.
func serveMetrics(addr, path string, rec *metrics.PrometheusRecorder) func() {
	mux := http.NewServeMux()
	mux.Handle(path, rec.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Serving metrics", "addr", addr, "path", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Warn("Metrics server shutdown", "error", err)
		}
	}
}
