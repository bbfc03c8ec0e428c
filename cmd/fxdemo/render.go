package main

import (
	"log/slog"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/preset"
)

// RenderCmd applies every step of a preset and saves the last frame.
type RenderCmd struct {
	Preset string `arg:"" optional:"" type:"existingfile" help:"Preset file; without one depth of field is switched on"`
	Output string `short:"o" help:"Output PNG (defaults to the configured output)"`
}

// Run implements the render command.
func (c *RenderCmd) Run(g *Globals) error {
	d, err := newDemo(g.cfg, nil)
	if err != nil {
		return err
	}
	defer d.close()

	steps := []fx.Request{{Effects: []fx.EffectUpdate{
		{ID: "dof", Params: fx.Params{fx.KeyActive: true}},
	}}}
	if c.Preset != "" {
		p, err := preset.Load(c.Preset)
		if err != nil {
			return err
		}
		steps = p.Requests()
		slog.Info("Loaded preset", "name", p.Name, "steps", len(steps))
	}

	for i, req := range steps {
		if err := d.apply(req); err != nil {
			return err
		}
		slog.Debug("Applied step", "step", i, "active", d.pipeline.Active())
	}

	out := c.Output
	if out == "" {
		out = g.cfg.Output
	}
	if err := d.save(out); err != nil {
		return err
	}
	slog.Info("Frame saved", "path", out, "active", d.pipeline.Active(), "frames", d.scene.Frames())
	return nil
}
