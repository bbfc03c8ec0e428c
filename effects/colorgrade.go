package effects

import (
	"errors"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/internal/filter"
)

// Grade holds color grading settings. The zero value is not neutral; use
// NeutralGrade.
type Grade struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Sepia      float64
	Invert     float64
}

// NeutralGrade returns settings that leave colors unchanged.
func NeutralGrade() Grade {
	return Grade{Brightness: 1, Contrast: 1, Saturation: 1}
}

// Matrix composes the grade into one color matrix, applied in the order
// brightness, contrast, saturation, sepia, invert.
func (g Grade) Matrix() *filter.ColorMatrixFilter {
	return filter.NewBrightnessFilter(float32(g.Brightness)).
		Then(filter.NewContrastFilter(float32(g.Contrast))).
		Then(filter.NewSaturationFilter(float32(g.Saturation))).
		Then(filter.NewSepiaFilter(float32(g.Sepia))).
		Then(filter.NewInvertFilter(float32(g.Invert)))
}

// ColorGrade adjusts the colors of everything beneath it.
//
// Params (numbers): brightness, contrast, saturation (1 is neutral) and
// sepia, invert (amounts in [0, 1], 0 is neutral).
type ColorGrade struct {
	passEffect
	grade Grade
}

// NewColorGrade creates a neutral ColorGrade effect.
func NewColorGrade() *ColorGrade {
	return &ColorGrade{grade: NeutralGrade()}
}

// Activate implements fx.Effect.
func (c *ColorGrade) Activate(parent *graph.Node) (*graph.Node, error) {
	return c.activatePass(parent, c.grade.Matrix())
}

// SetParams implements fx.Effect.
func (c *ColorGrade) SetParams(p fx.Params) error {
	if !c.active() {
		return nil
	}
	err := errors.Join(
		floatParam(p, "brightness", &c.grade.Brightness),
		floatParam(p, "contrast", &c.grade.Contrast),
		floatParam(p, "saturation", &c.grade.Saturation),
		floatParam(p, "sepia", &c.grade.Sepia),
		floatParam(p, "invert", &c.grade.Invert),
	)
	c.setFilter(c.grade.Matrix())
	return err
}

// Grade returns the current settings.
func (c *ColorGrade) Grade() Grade { return c.grade }
