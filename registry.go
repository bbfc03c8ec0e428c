package fx

// descriptor is the pipeline's bookkeeping record for one registered effect.
type descriptor struct {
	id     string
	effect Effect

	// order is the registry size at registration; it fixes the position of
	// the effect in every rebuilt chain.
	order int

	// params accumulates every update ever applied, including KeyActive.
	params Params

	// live is set while the effect holds an activated subgraph.
	live bool

	// failed is set when the last rebuild isolated this effect.
	failed bool
}

// intended reports whether the effect should be part of the next chain.
func (d *descriptor) intended() bool {
	active, _ := d.params.Active()
	return active
}

// registry is an append-only, registration-ordered set of descriptors.
type registry struct {
	byID map[string]*descriptor
	list []*descriptor
}

func newRegistry() registry {
	return registry{byID: make(map[string]*descriptor)}
}

func (r *registry) get(id string) (*descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

func (r *registry) add(id string, e Effect) *descriptor {
	d := &descriptor{
		id:     id,
		effect: e,
		order:  len(r.list),
		params: Params{KeyActive: false},
	}
	r.byID[id] = d
	r.list = append(r.list, d)
	return d
}

func (r *registry) len() int { return len(r.list) }

// filter returns the descriptors matching keep in ascending order.
// list is never re-sorted, so slice order is order.
func (r *registry) filter(keep func(*descriptor) bool) []*descriptor {
	var out []*descriptor
	for _, d := range r.list {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func (r *registry) intended() []*descriptor {
	return r.filter((*descriptor).intended)
}

func (r *registry) live() []*descriptor {
	return r.filter(func(d *descriptor) bool { return d.live })
}
