// Package preset loads scripted effect updates from YAML.
//
// A preset is a list of steps. Each step becomes one [fx.Request]:
//
//	name: focus-pull
//	steps:
//	  - clear: true
//	    effects:
//	      dof: {active: true, focusDist: 4}
//	      colorize: {active: true, color: {r: 1, g: 0.8, b: 0.6}}
//	  - effects:
//	      dof: {focusDist: 12}
//
// Effects within a step keep the order they have in the file.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/fx"
)

// Errors returned when decoding presets.
var (
	// ErrEmpty is returned for a document without content.
	ErrEmpty = errors.New("preset: empty document")

	// ErrInvalid is returned for a document that does not describe steps.
	ErrInvalid = errors.New("preset: invalid document")
)

// Preset is a named sequence of update steps.
type Preset struct {
	Name  string
	Steps []Step
}

// Step is one batched update.
type Step struct {
	Clear   bool
	Effects []fx.EffectUpdate
}

// Request converts the step into a pipeline request.
// The returned request shares no maps with s.
func (s Step) Request() fx.Request {
	req := fx.Request{Clear: s.Clear}
	if len(s.Effects) > 0 {
		req.Effects = make([]fx.EffectUpdate, len(s.Effects))
		for i, e := range s.Effects {
			req.Effects[i] = fx.EffectUpdate{ID: e.ID, Params: e.Params.Clone()}
		}
	}
	return req
}

// Requests returns one request per step, in order.
func (p *Preset) Requests() []fx.Request {
	out := make([]fx.Request, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Request()
	}
	return out
}

type document struct {
	Name  string    `yaml:"name"`
	Steps []rawStep `yaml:"steps"`
}

type rawStep struct {
	Clear   bool      `yaml:"clear"`
	Effects yaml.Node `yaml:"effects"`
}

// Parse decodes a preset document. Unknown top-level or step fields are
// rejected.
func Parse(data []byte) (*Preset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	p := &Preset{Name: doc.Name, Steps: make([]Step, 0, len(doc.Steps))}
	for i, rs := range doc.Steps {
		effects, err := decodeEffects(&rs.Effects)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", ErrInvalid, i, err)
		}
		p.Steps = append(p.Steps, Step{Clear: rs.Clear, Effects: effects})
	}
	return p, nil
}

// Load reads and decodes a preset file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// decodeEffects walks the effects mapping pair by pair so the file order
// survives; decoding into a map would lose it.
func decodeEffects(n *yaml.Node) ([]fx.EffectUpdate, error) {
	if n.Kind == 0 || n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: effects must be a mapping", n.Line)
	}

	seen := make(map[string]bool, len(n.Content)/2)
	out := make([]fx.EffectUpdate, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("line %d: effect id must be a non-empty string", key.Line)
		}
		if seen[key.Value] {
			return nil, fmt.Errorf("line %d: effect %q listed twice", key.Line, key.Value)
		}
		seen[key.Value] = true

		var params map[string]any
		if err := val.Decode(&params); err != nil {
			return nil, fmt.Errorf("line %d: effect %q: %w", val.Line, key.Value, err)
		}
		if params == nil {
			params = map[string]any{}
		}
		out = append(out, fx.EffectUpdate{ID: key.Value, Params: fx.Params(params)})
	}
	return out, nil
}
