package main

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/fx/internal/shader"
)

// ShadersCmd compiles the built-in shaders and optionally writes them out.
type ShadersCmd struct {
	Out string `short:"o" type:"path" help:"Directory to write <name>.spv files to"`
}

// Run implements the shaders command.
func (c *ShadersCmd) Run(_ *Globals) error {
	if c.Out != "" {
		if err := os.MkdirAll(c.Out, 0o755); err != nil {
			return err
		}
	}

	for _, src := range shader.All() {
		words, err := shader.Compile(src)
		if err != nil {
			return err
		}
		slog.Info("Compiled shader", "name", src.Name, "words", len(words))
		if c.Out == "" {
			continue
		}

		buf := make([]byte, 0, len(words)*4)
		for _, w := range words {
			buf = binary.LittleEndian.AppendUint32(buf, w)
		}
		path := filepath.Join(c.Out, src.Name+".spv")
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
