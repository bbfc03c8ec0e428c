package preset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fx"
)

const focusPull = `
name: focus-pull
steps:
  - clear: true
    effects:
      dof: {active: true, focusDist: 4}
      colorize:
        active: true
        color: {r: 1, g: 0.8, b: 0.6}
      blur: {active: false}
  - effects:
      dof: {focusDist: 12.5}
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(focusPull))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "focus-pull" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(p.Steps))
	}

	first := p.Steps[0]
	if !first.Clear {
		t.Error("first step should clear")
	}
	var ids []string
	for _, e := range first.Effects {
		ids = append(ids, e.ID)
	}
	if want := []string{"dof", "colorize", "blur"}; !equalStrings(ids, want) {
		t.Errorf("effect order = %v, want %v", ids, want)
	}

	dof := first.Effects[0].Params
	if active, ok := dof.Active(); !ok || !active {
		t.Errorf("dof active = %v, %v", active, ok)
	}
	if f, ok := dof.Float("focusDist"); !ok || f != 4 {
		t.Errorf("dof focusDist = %v, %v, want 4", f, ok)
	}
	color, ok := first.Effects[1].Params.Map("color")
	if !ok {
		t.Fatalf("colorize color = %T", first.Effects[1].Params["color"])
	}
	if g, _ := color.Float("g"); g != 0.8 {
		t.Errorf("color g = %v, want 0.8", g)
	}

	second := p.Steps[1]
	if second.Clear {
		t.Error("second step should not clear")
	}
	if f, _ := second.Effects[0].Params.Float("focusDist"); f != 12.5 {
		t.Errorf("focusDist = %v, want 12.5", f)
	}
	if _, present := second.Effects[0].Params[fx.KeyActive]; present {
		t.Error("second step should not carry an active key")
	}
}

func TestParseEffectWithoutParams(t *testing.T) {
	p, err := Parse([]byte("steps:\n  - effects:\n      dof:\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Steps[0].Effects[0].Params; got == nil || len(got) != 0 {
		t.Errorf("params = %v, want empty", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", ErrEmpty},
		{"unknown field", "stepz: []\n", ErrInvalid},
		{"unknown step field", "steps:\n  - reset: true\n", ErrInvalid},
		{"effects not a mapping", "steps:\n  - effects: [dof]\n", ErrInvalid},
		{"params not a mapping", "steps:\n  - effects:\n      dof: 3\n", ErrInvalid},
		{"duplicate effect", "steps:\n  - effects:\n      dof: {}\n      dof: {}\n", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStepRequest(t *testing.T) {
	s := Step{
		Clear: true,
		Effects: []fx.EffectUpdate{
			{ID: "dof", Params: fx.Params{"focusDist": 3.0}},
			{ID: "colorize", Params: fx.Params{fx.KeyActive: true}},
		},
	}
	req := s.Request()
	if !req.Clear || len(req.Effects) != 2 {
		t.Fatalf("req = %+v", req)
	}
	if req.Effects[0].ID != "dof" || req.Effects[1].ID != "colorize" {
		t.Errorf("order = %s, %s", req.Effects[0].ID, req.Effects[1].ID)
	}

	req.Effects[0].Params["focusDist"] = 9.0
	if s.Effects[0].Params["focusDist"] != 3.0 {
		t.Error("Request shares params with the step")
	}

	if empty := (Step{}).Request(); empty.Clear || empty.Effects != nil {
		t.Errorf("empty step request = %+v", empty)
	}
}

func TestRequests(t *testing.T) {
	p, err := Parse([]byte(focusPull))
	if err != nil {
		t.Fatal(err)
	}
	reqs := p.Requests()
	if len(reqs) != 2 || !reqs[0].Clear || reqs[1].Clear {
		t.Errorf("requests = %+v", reqs)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(focusPull), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "focus-pull" {
		t.Errorf("Name = %q", p.Name)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want ErrNotExist", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
