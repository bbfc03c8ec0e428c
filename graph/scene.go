package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Renderer draws a scene. It is invoked by [Scene.RenderFrame].
type Renderer interface {
	Render(s *Scene) error
}

// RendererFunc adapts a function to the [Renderer] interface.
type RendererFunc func(s *Scene) error

// Render calls f(s).
func (f RendererFunc) Render(s *Scene) error { return f(s) }

// TickHandle identifies a callback registered with [Scene.OnTick].
type TickHandle struct {
	id uint64
}

type tickHandler struct {
	id uint64
	fn func() error
}

// Scene owns a render graph and drives its per-frame callbacks.
type Scene struct {
	root     *Node
	nodes    map[string]*Node
	ticks    []tickHandler
	renderer Renderer
	seq      uint64

	// version increments on every structural or payload change;
	// rendered is the version submitted by the last render pass.
	version  uint64
	rendered uint64
	frames   uint64
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithRenderer sets the renderer used by [Scene.RenderFrame].
func WithRenderer(r Renderer) SceneOption {
	return func(s *Scene) {
		s.renderer = r
	}
}

// NewScene creates an empty scene with a group root node identified "root".
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		nodes: make(map[string]*Node),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = &Node{id: "root", kind: KindGroup, scene: s}
	s.nodes[s.root.id] = s.root
	return s
}

// Root returns the scene root node.
func (s *Scene) Root() *Node { return s.root }

// SetRenderer replaces the renderer. Nil disables drawing; frames are
// still counted.
func (s *Scene) SetRenderer(r Renderer) { s.renderer = r }

// NodeOption configures a node created by [Scene.NewNode].
type NodeOption func(*Node)

// WithID sets an explicit node identifier.
func WithID(id string) NodeOption {
	return func(n *Node) {
		n.id = id
	}
}

// WithData sets the initial node payload.
func WithData(data any) NodeOption {
	return func(n *Node) {
		n.data = data
	}
}

// NewNode creates a detached node owned by s. Without [WithID] a unique
// identifier is generated.
func (s *Scene) NewNode(kind Kind, opts ...NodeOption) (*Node, error) {
	n := &Node{kind: kind, scene: s}
	for _, opt := range opts {
		opt(n)
	}
	if n.id == "" {
		n.id = strings.ToLower(kind.String()) + "-" + uuid.NewString()
	}
	if _, ok := s.nodes[n.id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, n.id)
	}
	s.nodes[n.id] = n
	return n, nil
}

// Node resolves a live node by identifier.
func (s *Scene) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len returns the number of live nodes, including detached ones.
func (s *Scene) Len() int { return len(s.nodes) }

// OnTick registers a per-frame callback. Callbacks run in registration order.
func (s *Scene) OnTick(fn func() error) TickHandle {
	id := s.nextID()
	s.ticks = append(s.ticks, tickHandler{id: id, fn: fn})
	return TickHandle{id: id}
}

// OffTick removes a per-frame callback. It reports whether h was registered.
func (s *Scene) OffTick(h TickHandle) bool {
	i := slices.IndexFunc(s.ticks, func(t tickHandler) bool { return t.id == h.id })
	if i < 0 {
		return false
	}
	s.ticks = slices.Delete(s.ticks, i, i+1)
	return true
}

// Tick runs every per-frame callback once and returns their joined errors.
// A failing callback does not prevent the others from running.
func (s *Scene) Tick() error {
	var errs []error
	for _, t := range slices.Clone(s.ticks) {
		if err := t.fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RenderFrame submits the scene to the renderer. Unless force is set, the
// pass is skipped when nothing changed since the previous frame.
func (s *Scene) RenderFrame(force bool) error {
	if !force && s.frames > 0 && s.rendered == s.version {
		return nil
	}
	s.rendered = s.version
	s.frames++
	if s.renderer == nil {
		return nil
	}
	if err := s.renderer.Render(s); err != nil {
		return fmt.Errorf("graph: render frame %d: %w", s.frames, err)
	}
	return nil
}

// Frames returns the number of render passes submitted so far.
func (s *Scene) Frames() uint64 { return s.frames }

// Version returns a counter that changes whenever the graph changes.
func (s *Scene) Version() uint64 { return s.version }

func (s *Scene) touch() { s.version++ }

func (s *Scene) nextID() uint64 {
	s.seq++
	return s.seq
}

func (s *Scene) forget(n *Node) {
	if s.nodes[n.id] == n {
		delete(s.nodes, n.id)
	}
}
