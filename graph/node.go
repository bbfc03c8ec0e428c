package graph

import "slices"

// unknownStr is returned by String methods for out-of-range values.
const unknownStr = "Unknown"

// Kind identifies the role of a node in the render graph.
type Kind uint8

// Node kind constants.
const (
	// KindGroup is a plain grouping node with no render state.
	KindGroup Kind = iota

	// KindLookAt holds the viewing transform ([LookAt]).
	KindLookAt

	// KindCamera holds the projection parameters ([Optics]).
	KindCamera

	// KindMaterial overrides the base color of geometry beneath it.
	KindMaterial

	// KindStage renders its subtree offscreen and post-processes the result.
	KindStage

	// KindShader carries shader source for GPU backends.
	KindShader

	// KindGeometry draws content.
	KindGeometry
)

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindLookAt:
		return "LookAt"
	case KindCamera:
		return "Camera"
	case KindMaterial:
		return "Material"
	case KindStage:
		return "Stage"
	case KindShader:
		return "Shader"
	case KindGeometry:
		return "Geometry"
	default:
		return unknownStr
	}
}

// Event identifies a node change notification.
type Event uint8

// Event constants.
const (
	// EventMatrix fires when a view or projection node changes.
	EventMatrix Event = iota

	// EventUpdate fires when any other node payload changes.
	EventUpdate

	// EventDestroyed fires once, just before a node is destroyed.
	EventDestroyed
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventMatrix:
		return "matrix"
	case EventUpdate:
		return "update"
	case EventDestroyed:
		return "destroyed"
	default:
		return unknownStr
	}
}

// Subscription is a handle returned by [Node.On].
// The zero value is not subscribed to anything.
type Subscription struct {
	node  *Node
	event Event
	id    uint64
}

// Active reports whether the subscription has not been released yet.
func (s Subscription) Active() bool {
	if s.node == nil || s.node.destroyed {
		return false
	}
	for _, l := range s.node.listeners[s.event] {
		if l.id == s.id {
			return true
		}
	}
	return false
}

// Release unsubscribes the handle from the node it was created on.
// It reports whether the subscription was still active.
func (s Subscription) Release() bool {
	if s.node == nil {
		return false
	}
	return s.node.Off(s)
}

type listener struct {
	id uint64
	fn func(*Node)
}

// Node is a vertex of the render graph.
type Node struct {
	id        string
	kind      Kind
	data      any
	scene     *Scene
	parent    *Node
	children  []*Node
	listeners map[Event][]listener
	destroyed bool
}

// ID returns the node identifier, unique within its scene.
func (n *Node) ID() string { return n.id }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Data returns the node payload.
func (n *Node) Data() any { return n.data }

// Scene returns the scene that created the node.
func (n *Node) Scene() *Scene { return n.scene }

// Parent returns the parent node, or nil if the node is detached.
func (n *Node) Parent() *Node { return n.parent }

// Destroyed reports whether the node has been destroyed.
func (n *Node) Destroyed() bool { return n.destroyed }

// Children returns a copy of the node's children in order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// SetData replaces the payload and notifies subscribers.
// View and projection nodes emit [EventMatrix]; all others emit [EventUpdate].
func (n *Node) SetData(data any) {
	if n.destroyed {
		return
	}
	n.data = data
	n.scene.touch()
	if n.kind == KindLookAt || n.kind == KindCamera {
		n.emit(EventMatrix)
		return
	}
	n.emit(EventUpdate)
}

// Add attaches detached nodes as the last children of n, in order.
// Either all nodes are attached or none is.
func (n *Node) Add(children ...*Node) error {
	if err := n.checkAttach(children...); err != nil {
		return err
	}
	for _, c := range children {
		c.parent = n
	}
	n.children = append(n.children, children...)
	n.scene.touch()
	return nil
}

// InsertAt attaches a detached node as the i-th child of n.
// Out-of-range indices are clamped.
func (n *Node) InsertAt(i int, child *Node) error {
	if err := n.checkAttach(child); err != nil {
		return err
	}
	i = max(0, min(i, len(n.children)))
	child.parent = n
	n.children = slices.Insert(n.children, i, child)
	n.scene.touch()
	return nil
}

func (n *Node) checkAttach(children ...*Node) error {
	if n.destroyed {
		return ErrDestroyed
	}
	for i, c := range children {
		switch {
		case c == nil:
			return ErrNilNode
		case c.destroyed:
			return ErrDestroyed
		case c.scene != n.scene:
			return ErrForeignNode
		case c.parent != nil || slices.Contains(children[:i], c):
			return ErrHasParent
		case c == n || n.HasAncestor(c):
			return ErrCycle
		}
	}
	return nil
}

// Detach removes n from its parent and returns the index it occupied,
// or -1 if n was not attached.
func (n *Node) Detach() int {
	p := n.parent
	if p == nil {
		return -1
	}
	i := slices.Index(p.children, n)
	p.children = slices.Delete(p.children, i, i+1)
	n.parent = nil
	n.scene.touch()
	return i
}

// DisconnectNodes detaches all children of n and returns them in order.
// The returned nodes stay alive and can be attached elsewhere.
func (n *Node) DisconnectNodes() []*Node {
	out := n.children
	n.children = nil
	for _, c := range out {
		c.parent = nil
	}
	if len(out) > 0 {
		n.scene.touch()
	}
	return out
}

// RemoveNodes detaches and destroys all children of n.
func (n *Node) RemoveNodes() {
	for _, c := range n.DisconnectNodes() {
		c.Destroy()
	}
}

// Destroy detaches n and destroys it together with all its descendants.
// Destroyed nodes release their identifiers and subscriptions.
// Destroy is idempotent.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.Detach()
	n.destroy()
}

func (n *Node) destroy() {
	for _, c := range n.children {
		c.parent = nil
		c.destroy()
	}
	n.children = nil
	n.emit(EventDestroyed)
	n.listeners = nil
	n.destroyed = true
	n.scene.forget(n)
}

// HasAncestor reports whether a is a strict ancestor of n.
func (n *Node) HasAncestor(a *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// FindParentByKind returns the nearest strict ancestor of the given kind,
// or nil if there is none.
func (n *Node) FindParentByKind(kind Kind) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.kind == kind {
			return p
		}
	}
	return nil
}

// Walk visits n and its descendants in depth-first pre-order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// On subscribes fn to an event on n. The returned handle releases the
// subscription when passed to [Node.Off].
func (n *Node) On(event Event, fn func(*Node)) Subscription {
	if n.destroyed || fn == nil {
		return Subscription{}
	}
	if n.listeners == nil {
		n.listeners = make(map[Event][]listener)
	}
	id := n.scene.nextID()
	n.listeners[event] = append(n.listeners[event], listener{id: id, fn: fn})
	return Subscription{node: n, event: event, id: id}
}

// Off releases a subscription. It reports whether the subscription was
// still active. Off on a zero Subscription is a no-op.
func (n *Node) Off(sub Subscription) bool {
	if sub.node != n || n.listeners == nil {
		return false
	}
	ls := n.listeners[sub.event]
	i := slices.IndexFunc(ls, func(l listener) bool { return l.id == sub.id })
	if i < 0 {
		return false
	}
	n.listeners[sub.event] = slices.Delete(ls, i, i+1)
	return true
}

// emit calls a snapshot of the listeners so handlers may unsubscribe.
func (n *Node) emit(event Event) {
	ls := slices.Clone(n.listeners[event])
	for _, l := range ls {
		l.fn(n)
	}
}
