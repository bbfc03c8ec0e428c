package fx

import (
	"fmt"
	"testing"
	"time"

	"github.com/gogpu/fx/graph"
)

// journal records lifecycle calls across fake effects as "id.op".
type journal struct {
	calls []string
}

func (j *journal) add(id, op string) { j.calls = append(j.calls, id+"."+op) }

func (j *journal) reset() { j.calls = nil }

// fakeEffect attaches a single group node and records every call.
type fakeEffect struct {
	id string
	j  *journal

	initErr     error
	activateErr error
	setErr      error
	deactErr    error

	// orphan makes Activate return a node outside the parent's subtree.
	orphan bool

	// extra attaches a second node before failing Activate.
	extra bool

	scene  *graph.Scene
	ctx    InitContext
	parent *graph.Node
	node   *graph.Node
	active bool
	inits  int
	params []Params

	// offGraph is set when Activate saw a parent not connected to the
	// scene root.
	offGraph bool
}

func newFake(id string, j *journal) *fakeEffect {
	return &fakeEffect{id: id, j: j}
}

func (f *fakeEffect) Init(ctx InitContext) error {
	f.j.add(f.id, "init")
	f.inits++
	if f.initErr != nil {
		return f.initErr
	}
	f.scene = ctx.LookAt.Scene()
	f.ctx = ctx
	return nil
}

func (f *fakeEffect) Activate(parent *graph.Node) (*graph.Node, error) {
	f.j.add(f.id, "activate")
	f.parent = parent
	f.offGraph = parent != f.scene.Root() && !parent.HasAncestor(f.scene.Root())
	if f.active {
		return nil, fmt.Errorf("%s already active", f.id)
	}
	if f.activateErr != nil {
		if f.extra {
			n, _ := f.scene.NewNode(graph.KindGroup)
			_ = parent.Add(n)
		}
		return nil, f.activateErr
	}
	n, err := f.scene.NewNode(graph.KindGroup, graph.WithData(f.id))
	if err != nil {
		return nil, err
	}
	if err := parent.Add(n); err != nil {
		return nil, err
	}
	f.node = n
	f.active = true
	if f.orphan {
		o, _ := f.scene.NewNode(graph.KindGroup)
		return o, nil
	}
	return n, nil
}

func (f *fakeEffect) SetParams(p Params) error {
	if !f.active {
		return nil
	}
	f.j.add(f.id, "setParams")
	f.params = append(f.params, p.Clone())
	return f.setErr
}

func (f *fakeEffect) Deactivate() error {
	f.j.add(f.id, "deactivate")
	if !f.active {
		return fmt.Errorf("%s not active", f.id)
	}
	f.node.Destroy()
	f.node = nil
	f.active = false
	return f.deactErr
}

func (f *fakeEffect) lastParams() Params {
	if len(f.params) == 0 {
		return nil
	}
	return f.params[len(f.params)-1]
}

// fixture is a scene with lookAt -> camera -> {sibling, root}, and content
// nodes beneath root.
type fixture struct {
	scene   *graph.Scene
	lookAt  *graph.Node
	camera  *graph.Node
	sibling *graph.Node
	root    *graph.Node
	content []*graph.Node
	j       *journal
}

func newFixture(t *testing.T, contentNodes int) *fixture {
	t.Helper()
	s := graph.NewScene()
	fix := &fixture{scene: s, j: &journal{}}

	fix.lookAt = mustNode(t, s, graph.KindLookAt, graph.WithData(graph.LookAt{Eye: graph.Vec3{Z: 10}}))
	fix.camera = mustNode(t, s, graph.KindCamera, graph.WithData(graph.DefaultOptics()))
	fix.sibling = mustNode(t, s, graph.KindGroup, graph.WithID("sibling"))
	fix.root = mustNode(t, s, graph.KindGroup, graph.WithID("fx-root"))
	for i := range contentNodes {
		fix.content = append(fix.content, mustNode(t, s, graph.KindGeometry, graph.WithID(fmt.Sprintf("content-%d", i))))
	}

	mustAdd(t, s.Root(), fix.lookAt)
	mustAdd(t, fix.lookAt, fix.camera)
	mustAdd(t, fix.camera, fix.sibling, fix.root)
	mustAdd(t, fix.root, fix.content...)
	return fix
}

func mustNode(t *testing.T, s *graph.Scene, kind graph.Kind, opts ...graph.NodeOption) *graph.Node {
	t.Helper()
	n, err := s.NewNode(kind, opts...)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	return n
}

func mustAdd(t *testing.T, parent *graph.Node, children ...*graph.Node) {
	t.Helper()
	if err := parent.Add(children...); err != nil {
		t.Fatalf("Add: %v", err)
	}
}

// pipeline creates a pipeline on the fixture root and registers fakes for
// ids, in order.
func (fix *fixture) pipeline(t *testing.T, ids []string, opts ...Option) (*Pipeline, map[string]*fakeEffect) {
	t.Helper()
	p, err := New(fix.root, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	fakes := make(map[string]*fakeEffect, len(ids))
	for _, id := range ids {
		f := newFake(id, fix.j)
		if err := p.Register(id, f); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
		fakes[id] = f
	}
	fix.j.reset()
	return p, fakes
}

// chain returns the effect ids found walking from root down the first
// child of each fake effect node.
func (fix *fixture) chain() []string {
	var ids []string
	n := fix.root
	for {
		kids := n.Children()
		if len(kids) != 1 {
			return ids
		}
		id, ok := kids[0].Data().(string)
		if !ok {
			return ids
		}
		ids = append(ids, id)
		n = kids[0]
	}
}

// contentUnder reports whether the content nodes are exactly the children
// of parent, in order.
func (fix *fixture) contentUnder(parent *graph.Node) bool {
	kids := parent.Children()
	if len(kids) != len(fix.content) {
		return false
	}
	for i := range kids {
		if kids[i] != fix.content[i] {
			return false
		}
	}
	return true
}

func activate(ids ...string) Request {
	req := Request{}
	for _, id := range ids {
		req.Effects = append(req.Effects, EffectUpdate{ID: id, Params: Params{KeyActive: true}})
	}
	return req
}

func deactivate(ids ...string) Request {
	req := Request{}
	for _, id := range ids {
		req.Effects = append(req.Effects, EffectUpdate{ID: id, Params: Params{KeyActive: false}})
	}
	return req
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

// countingRecorder implements metrics.Recorder.
type countingRecorder struct {
	rebuilds    int
	rebuildErrs int
	lastActive  int
	live        map[string]int
	failures    map[string]int
	unknown     int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{live: map[string]int{}, failures: map[string]int{}}
}

func (r *countingRecorder) ObserveRebuild(_ time.Duration, active int, err error) {
	r.rebuilds++
	r.lastActive = active
	if err != nil {
		r.rebuildErrs++
	}
}

func (r *countingRecorder) IncLiveUpdate(effect string) { r.live[effect]++ }

func (r *countingRecorder) IncEffectFailure(effect, op string) { r.failures[effect+"."+op]++ }

func (r *countingRecorder) IncUnknownEffect() { r.unknown++ }
