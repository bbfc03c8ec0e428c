package fx

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/fx/graph"
	"github.com/gogpu/fx/metrics"
)

// EffectUpdate is one entry of a batched update: parameter changes for the
// effect registered under ID.
type EffectUpdate struct {
	ID     string
	Params Params
}

// Request is a batched update.
//
// When Clear is set every effect is switched off before Effects are applied,
// so a request can describe the complete set of wanted effects. Effects are
// applied in slice order.
type Request struct {
	Clear   bool
	Effects []EffectUpdate
}

// Pipeline composes registered effects onto the content beneath a root node.
//
// Updates only record intent. The chain is rebuilt lazily, at most once per
// scene tick, in registration order.
//
// A Pipeline is not safe for concurrent use; call it from the goroutine
// driving the scene.
type Pipeline struct {
	root   *graph.Node
	scene  *graph.Scene
	lookAt *graph.Node
	camera *graph.Node

	registry registry
	dirty    bool

	// leaf is the tail of the built chain; nil before the first rebuild.
	leaf *graph.Node

	tick    graph.TickHandle
	hooked  bool
	closed  bool
	rebuilt uint64

	policy   FailurePolicy
	logger   *slog.Logger
	recorder metrics.Recorder
}

// New creates a pipeline that applies effects to the children of root.
//
// root must have a [graph.KindLookAt] ancestor; a [graph.KindCamera]
// ancestor is optional. Unless [WithoutTickHook] is given the pipeline
// subscribes to the scene's tick and rebuilds from there.
func New(root *graph.Node, opts ...Option) (*Pipeline, error) {
	if root == nil || root.Destroyed() {
		return nil, ErrNilRoot
	}

	lookAt := root.FindParentByKind(graph.KindLookAt)
	if lookAt == nil {
		return nil, fmt.Errorf("%w above node %q", ErrNoLookAt, root.ID())
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{
		root:     root,
		scene:    root.Scene(),
		lookAt:   lookAt,
		camera:   root.FindParentByKind(graph.KindCamera),
		registry: newRegistry(),
		policy:   o.policy,
		logger:   o.logger,
		recorder: o.recorder,
	}
	if !o.noTick {
		p.tick = p.scene.OnTick(p.Tick)
		p.hooked = true
	}
	return p, nil
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}

// Register adds an effect under a unique id and initializes it.
//
// A duplicate id is rejected with [ErrDuplicateEffect] and logged; the
// registered effect is left untouched. New effects start inactive and are
// placed after every effect registered before them.
func (p *Pipeline) Register(id string, e Effect) error {
	if id == "" || e == nil {
		return ErrInvalidEffect
	}
	if p.closed {
		return ErrClosed
	}
	if _, ok := p.registry.get(id); ok {
		p.log().Warn("fx: effect already registered", "effect", id)
		return fmt.Errorf("%w: %s", ErrDuplicateEffect, id)
	}

	if err := e.Init(InitContext{LookAt: p.lookAt, Camera: p.camera}); err != nil {
		return &EffectError{ID: id, Op: OpInit, Err: err}
	}

	d := p.registry.add(id, e)
	p.log().Debug("fx: effect registered", "effect", id, "order", d.order)
	return nil
}

// Update records a batched activation and parameter change.
//
// Parameters of an effect that is already active are pushed to it at once.
// Switching an effect on or off, or clearing, marks the chain for a rebuild
// on the next tick. Unknown ids are logged and skipped. Update never
// rebuilds by itself.
func (p *Pipeline) Update(req Request) {
	if p.closed {
		p.log().Warn("fx: update on closed pipeline ignored")
		return
	}

	if req.Clear {
		for _, d := range p.registry.list {
			d.params[KeyActive] = false
		}
		p.dirty = true
	}

	for _, u := range req.Effects {
		p.updateEffect(u.ID, u.Params)
	}
}

func (p *Pipeline) updateEffect(id string, update Params) {
	d, ok := p.registry.get(id)
	if !ok {
		p.log().Warn("fx: effect not found", "effect", id)
		p.recorder.IncUnknownEffect()
		return
	}

	if v, present := update[KeyActive]; present {
		if _, isBool := v.(bool); !isBool {
			p.log().Warn("fx: ignoring non-bool active parameter", "effect", id, "value", v)
			update = update.Clone()
			delete(update, KeyActive)
		}
	}
	active, explicit := update.Active()
	wasActive := d.intended()

	if d.live && wasActive && (!explicit || active) {
		if err := d.effect.SetParams(update); err != nil {
			p.log().Warn("fx: live parameter update failed", "effect", id, "error", err)
			p.recorder.IncEffectFailure(id, string(OpSetParams))
		} else {
			p.log().Debug("fx: live parameter update", "effect", id, "keys", len(update))
			p.recorder.IncLiveUpdate(id)
		}
	}

	for k, v := range update {
		d.params[k] = v
	}

	// An effect isolated by an earlier rebuild is intended active but not
	// live; switching it on again retries it.
	if explicit && (active != wasActive || active != d.live) {
		p.dirty = true
	}
}

// Tick rebuilds the effect chain if an update marked it dirty.
//
// It is registered with the scene's tick by [New]. A *[RebuildError] is
// returned when an effect failed; see [FailurePolicy].
func (p *Pipeline) Tick() error {
	if !p.dirty || p.closed {
		return nil
	}

	start := time.Now()
	err := p.rebuild()
	p.recorder.ObserveRebuild(time.Since(start), len(p.registry.live()), err)
	if err != nil {
		var re *RebuildError
		if errors.As(err, &re) && !re.Aborted {
			p.log().Warn("fx: rebuild isolated failing effects", "effects", re.Failed())
		} else {
			p.log().Error("fx: rebuild failed", "error", err)
		}
	}
	return err
}

// Close switches every effect off, puts the content back directly beneath
// the root and detaches the pipeline from the scene tick. The root node
// stays owned by the caller. Close is idempotent.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.hooked {
		p.scene.OffTick(p.tick)
	}

	content := p.detachContent()
	errs := p.teardown()
	if err := p.root.Add(content...); err != nil {
		errs = append(errs, fmt.Errorf("fx: restore content: %w", err))
	}
	p.dirty = false
	if err := p.scene.RenderFrame(true); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Dirty reports whether a rebuild is pending.
func (p *Pipeline) Dirty() bool { return p.dirty }

// Root returns the node the pipeline was created on.
func (p *Pipeline) Root() *graph.Node { return p.root }

// Leaf returns the node the content is currently attached to, or nil
// before the first rebuild.
func (p *Pipeline) Leaf() *graph.Node { return p.leaf }

// Rebuilds returns the number of rebuilds that committed.
func (p *Pipeline) Rebuilds() uint64 { return p.rebuilt }

// Effects returns all registered ids in registration order.
func (p *Pipeline) Effects() []string {
	ids := make([]string, 0, p.registry.len())
	for _, d := range p.registry.list {
		ids = append(ids, d.id)
	}
	return ids
}

// Active returns the ids of the effects in the built chain, in chain order.
func (p *Pipeline) Active() []string {
	var ids []string
	for _, d := range p.registry.live() {
		ids = append(ids, d.id)
	}
	return ids
}

// Params returns a copy of the accumulated parameters of an effect.
func (p *Pipeline) Params(id string) (Params, bool) {
	d, ok := p.registry.get(id)
	if !ok {
		return nil, false
	}
	return d.params.Clone(), true
}
