package fx

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/fx/graph"
)

// rebuild reconstructs the effect chain beneath the root.
//
// The content subtree is detached, every live effect is deactivated and the
// old chain removed. The root is then detached from its parent so the new
// chain is built off-graph; it is spliced back at its original position
// once every effect has been processed. Finally the content is reattached
// beneath the new leaf and a render pass is forced.
func (p *Pipeline) rebuild() error {
	previous := p.registry.live()
	content := p.detachContent()
	failures := p.teardown()

	parent, index := p.stage()

	chainErrs := p.activateChain(p.registry.intended())
	failures = append(failures, chainErrs...)

	aborted := len(chainErrs) > 0 && p.policy == AbortOnFailure
	if aborted {
		failures = append(failures, p.teardown()...)
		failures = append(failures, p.activateChain(previous)...)
	}

	if err := p.leaf.Add(content...); err != nil {
		failures = append(failures, fmt.Errorf("fx: reattach content to %q: %w", p.leaf.ID(), err))
		p.leaf = p.root
		if err := p.root.Add(content...); err != nil {
			return fmt.Errorf("fx: content lost: %w", err)
		}
	}

	if err := p.commit(parent, index); err != nil {
		return err
	}

	if err := p.scene.RenderFrame(true); err != nil {
		return err
	}

	if aborted {
		return &RebuildError{Failures: failures, Aborted: true}
	}

	p.dirty = false
	p.rebuilt++
	p.log().Debug("fx: rebuilt effect chain", "active", p.Active(), "leaf", p.leaf.ID())

	if len(failures) > 0 {
		return &RebuildError{Failures: failures}
	}
	return nil
}

// detachContent detaches the content subtree from wherever it hangs now:
// the leaf of the current chain, or the root before the first rebuild.
func (p *Pipeline) detachContent() []*graph.Node {
	switch {
	case p.leaf == nil:
		return p.root.DisconnectNodes()
	case p.leaf.Destroyed():
		p.log().Warn("fx: chain leaf destroyed outside the pipeline, content lost", "leaf", p.leaf.ID())
		return nil
	default:
		return p.leaf.DisconnectNodes()
	}
}

// teardown deactivates live effects in reverse chain order and removes
// whatever is left beneath the root. The content must be detached first.
func (p *Pipeline) teardown() []error {
	var errs []error
	live := p.registry.live()
	for i := len(live) - 1; i >= 0; i-- {
		d := live[i]
		if err := d.effect.Deactivate(); err != nil {
			errs = append(errs, &EffectError{ID: d.id, Op: OpDeactivate, Err: err})
			p.recorder.IncEffectFailure(d.id, string(OpDeactivate))
		}
		d.live = false
	}
	p.root.RemoveNodes()
	p.leaf = nil
	return errs
}

// stage takes the root off-graph. It returns the former parent and index,
// or nil when the root is not attached.
func (p *Pipeline) stage() (*graph.Node, int) {
	parent := p.root.Parent()
	if parent == nil {
		return nil, -1
	}
	return parent, p.root.Detach()
}

func (p *Pipeline) commit(parent *graph.Node, index int) error {
	if parent == nil {
		return nil
	}
	if err := parent.InsertAt(index, p.root); err != nil {
		return fmt.Errorf("fx: splice root %q back into %q: %w", p.root.ID(), parent.ID(), err)
	}
	return nil
}

// activateChain threads the given effects beneath the root in slice order.
// A failing effect is rolled back on its own and the walk continues.
func (p *Pipeline) activateChain(ds []*descriptor) []error {
	p.leaf = p.root

	var errs []error
	for _, d := range ds {
		if err := p.activate(d); err != nil {
			d.failed = true
			errs = append(errs, err)
			p.recorder.IncEffectFailure(d.id, string(err.Op))
			p.log().Warn("fx: effect failed during rebuild", "effect", d.id, "op", err.Op, "error", err.Err)
			continue
		}
		d.failed = false
	}
	return errs
}

func (p *Pipeline) activate(d *descriptor) *EffectError {
	parent := p.leaf
	existing := parent.Children()

	next, err := d.effect.Activate(parent)
	if err != nil {
		discardNew(parent, existing)
		return &EffectError{ID: d.id, Op: OpActivate, Err: err}
	}
	d.live = true

	if next == nil || next.Destroyed() || (next != p.root && !next.HasAncestor(p.root)) {
		p.release(d, parent, existing)
		return &EffectError{ID: d.id, Op: OpActivate, Err: ErrBadLeaf}
	}

	// The full accumulated parameters, so a reactivated effect gets its
	// last known configuration rather than the latest delta.
	if err := d.effect.SetParams(d.params.Clone()); err != nil {
		if !errors.Is(err, ErrBadParam) {
			p.release(d, parent, existing)
			return &EffectError{ID: d.id, Op: OpSetParams, Err: err}
		}
		p.recorder.IncEffectFailure(d.id, string(OpSetParams))
		p.log().Warn("fx: effect rejected stored parameters", "effect", d.id, "error", err)
	}

	p.leaf = next
	return nil
}

// release undoes a half-finished activation.
func (p *Pipeline) release(d *descriptor, parent *graph.Node, existing []*graph.Node) {
	if err := d.effect.Deactivate(); err != nil {
		p.log().Warn("fx: deactivate after failed activation", "effect", d.id, "error", err)
	}
	d.live = false
	discardNew(parent, existing)
}

// discardNew destroys children of parent that are not in existing.
func discardNew(parent *graph.Node, existing []*graph.Node) {
	for _, c := range parent.Children() {
		if !slices.Contains(existing, c) {
			c.Destroy()
		}
	}
}
