// Command fxdemo renders a small scene through the fx effect pipeline.
//
//	fxdemo render presets/focus.yaml -o focus.png
//	fxdemo watch presets/focus.yaml
//	fxdemo shaders --out build/spirv
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/gogpu/fx"
)

// Globals carries the configuration shared by all commands.
type Globals struct {
	Config  string `short:"c" help:"Configuration file path" default:"fxdemo.yaml" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	cfg *Config
}

// CLI is the command line of fxdemo.
type CLI struct {
	Globals

	Render  RenderCmd  `cmd:"" help:"Apply a preset and write the final frame as PNG"`
	Watch   WatchCmd   `cmd:"" help:"Re-apply a preset whenever it changes on disk"`
	Shaders ShadersCmd `cmd:"" help:"Compile the built-in WGSL shaders to SPIR-V"`
}

// AfterApply runs after flag parsing.
func (c *CLI) AfterApply() error {
	return c.Globals.setup()
}

// setup loads the configuration and installs the logger.
func (g *Globals) setup() error {
	cfg, err := LoadConfig(g.Config)
	if err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if g.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	fx.SetLogger(logger)

	g.cfg = cfg
	return nil
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fxdemo"),
		kong.Description("Post-processing effect pipeline demo."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli.Globals); err != nil {
		slog.Error("fxdemo failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
