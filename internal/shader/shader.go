// Package shader holds the WGSL sources the effects attach to the graph for
// GPU backends, and compiles them to SPIR-V with naga.
package shader

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/dof.wgsl
var dofSource string

//go:embed shaders/colorize.wgsl
var colorizeSource string

// ErrEmptySource is returned when compiling a source with no WGSL.
var ErrEmptySource = errors.New("shader: empty source")

// Source is the payload of a graph.KindShader node.
type Source struct {
	Name string
	WGSL string
}

// DepthOfField returns the separable depth-of-field blur shader.
func DepthOfField() Source { return Source{Name: "dof", WGSL: dofSource} }

// Colorize returns the material override shader.
func Colorize() Source { return Source{Name: "colorize", WGSL: colorizeSource} }

// All returns every built-in shader, in a stable order.
func All() []Source {
	return []Source{DepthOfField(), Colorize()}
}

// Compile translates s to SPIR-V words.
func Compile(s Source) ([]uint32, error) {
	if s.WGSL == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptySource, s.Name)
	}
	spirv, err := naga.Compile(s.WGSL)
	if err != nil {
		return nil, fmt.Errorf("shader: compile %q: %w", s.Name, err)
	}
	return Words(spirv), nil
}

// Words converts little-endian SPIR-V bytes to 32-bit words. Trailing
// bytes that do not fill a word are dropped.
func Words(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
