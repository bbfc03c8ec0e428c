package effects

import (
	"errors"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/graph"
)

// Lifecycle errors.
var (
	ErrAlreadyInitialized = errors.New("effects: already initialized")
	ErrNotInitialized     = errors.New("effects: not initialized")
	ErrAlreadyActive      = errors.New("effects: already active")
	ErrNotActive          = errors.New("effects: not active")
	ErrNilParent          = errors.New("effects: nil parent node")
)

var (
	_ fx.Effect = (*DepthOfField)(nil)
	_ fx.Effect = (*Colorize)(nil)
	_ fx.Effect = (*Blur)(nil)
	_ fx.Effect = (*ColorGrade)(nil)
	_ fx.Effect = (*Pixelate)(nil)
)

// State is the lifecycle state of an effect.
type State uint8

// Lifecycle states.
const (
	StateUninitialized State = iota
	StateInitialized
	StateActive
	StateInactive
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitialized:
		return "Initialized"
	case StateActive:
		return "Active"
	case StateInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

// base tracks the lifecycle and the subgraph an effect owns while active.
type base struct {
	state State
	root  *graph.Node
}

// State returns the current lifecycle state.
func (b *base) State() State { return b.state }

func (b *base) init() error {
	if b.state != StateUninitialized {
		return ErrAlreadyInitialized
	}
	b.state = StateInitialized
	return nil
}

func (b *base) checkActivate(parent *graph.Node) error {
	switch {
	case b.state == StateUninitialized:
		return ErrNotInitialized
	case b.state == StateActive:
		return ErrAlreadyActive
	case parent == nil:
		return ErrNilParent
	}
	return nil
}

func (b *base) active() bool { return b.state == StateActive }

// activated records root as the owned subgraph.
func (b *base) activated(root *graph.Node) {
	b.root = root
	b.state = StateActive
}

// deactivate destroys the owned subgraph.
func (b *base) deactivate() error {
	if b.state != StateActive {
		return ErrNotActive
	}
	if b.root != nil {
		b.root.Destroy()
		b.root = nil
	}
	b.state = StateInactive
	return nil
}

// link describes one node of a chain.
type link struct {
	kind graph.Kind
	data any
}

// attachChain creates one node per link in parent's scene, nests each node
// beneath the previous one and attaches the first to parent. On error
// nothing stays attached and every created node is destroyed.
func attachChain(parent *graph.Node, links ...link) ([]*graph.Node, error) {
	s := parent.Scene()
	nodes := make([]*graph.Node, 0, len(links))
	fail := func(err error) ([]*graph.Node, error) {
		if len(nodes) > 0 {
			nodes[0].Destroy()
		}
		return nil, err
	}

	for _, l := range links {
		var opts []graph.NodeOption
		if l.data != nil {
			opts = append(opts, graph.WithData(l.data))
		}
		n, err := s.NewNode(l.kind, opts...)
		if err != nil {
			return fail(err)
		}
		if len(nodes) > 0 {
			if err := nodes[len(nodes)-1].Add(n); err != nil {
				n.Destroy()
				return fail(err)
			}
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	if err := parent.Add(nodes[0]); err != nil {
		return fail(err)
	}
	return nodes, nil
}
