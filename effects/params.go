package effects

import (
	"errors"
	"fmt"

	"github.com/gogpu/fx"
	"github.com/gogpu/gg"
)

// ErrBadParam is returned by SetParams for a parameter of the wrong type or
// out of range. Valid parameters in the same call are still applied.
var ErrBadParam = fx.ErrBadParam

// floatParam stores p[key] into dst when present.
func floatParam(p fx.Params, key string, dst *float64) error {
	v, ok := p[key]
	if !ok {
		return nil
	}
	f, ok := p.Float(key)
	if !ok {
		return fmt.Errorf("%w: %s must be a number, got %T", ErrBadParam, key, v)
	}
	*dst = f
	return nil
}

// boolParam stores p[key] into dst when present.
func boolParam(p fx.Params, key string, dst *bool) error {
	v, ok := p[key]
	if !ok {
		return nil
	}
	b, ok := p.Bool(key)
	if !ok {
		return fmt.Errorf("%w: %s must be a bool, got %T", ErrBadParam, key, v)
	}
	*dst = b
	return nil
}

// colorParam stores p[key] into dst when present.
func colorParam(p fx.Params, key string, dst *gg.RGBA) error {
	v, ok := p[key]
	if !ok {
		return nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = c
	return nil
}

// ParseColor converts a color parameter to gg.RGBA. It accepts gg.RGBA, a
// hex string ("#rgb", "#rgba", "#rrggbb", "#rrggbbaa") and a mapping with
// numeric r, g, b and optional a components in [0, 1]. Alpha defaults to 1.
func ParseColor(v any) (gg.RGBA, error) {
	switch c := v.(type) {
	case gg.RGBA:
		return c, nil
	case string:
		rgba, err := gg.ParseHex(c)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("%w: %w", ErrBadParam, err)
		}
		return rgba, nil
	case fx.Params:
		return colorFromMap(c)
	case map[string]any:
		return colorFromMap(fx.Params(c))
	default:
		return gg.RGBA{}, fmt.Errorf("%w: unsupported color %T", ErrBadParam, v)
	}
}

func colorFromMap(m fx.Params) (gg.RGBA, error) {
	c := gg.RGBA{A: 1}
	err := errors.Join(
		floatParam(m, "r", &c.R),
		floatParam(m, "g", &c.G),
		floatParam(m, "b", &c.B),
		floatParam(m, "a", &c.A),
	)
	if err != nil {
		return gg.RGBA{}, err
	}
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if v < 0 || v > 1 {
			return gg.RGBA{}, fmt.Errorf("%w: color component %v outside [0, 1]", ErrBadParam, v)
		}
	}
	return c, nil
}
