package fx

import "github.com/gogpu/fx/graph"

// InitContext gives an effect read-only access to the view nodes found
// above the pipeline root.
type InitContext struct {
	// LookAt is the nearest view node above the pipeline root. Never nil.
	LookAt *graph.Node

	// Camera is the nearest projection node above the pipeline root,
	// or nil if there is none.
	Camera *graph.Node
}

// Effect is the lifecycle contract every pluggable post-processing effect
// implements.
//
// The pipeline drives an effect through these states:
//
//	Uninitialized --Init--> Initialized --Activate--> Active
//	Active --Deactivate--> Inactive --Activate--> Active
//
// Init is called once, at registration, and must not attach nodes.
//
// Activate attaches the effect's own subgraph beneath parent and returns the
// node under which the next effect (or the content) is attached. Calling it
// while active is a contract violation.
//
// SetParams applies parameters. It is called with a delta for live updates
// and with the full accumulated parameters right after Activate. While
// inactive it must be a silent no-op.
//
// Deactivate releases every node and subscription created by Activate.
// Calling it while not active is a contract violation.
type Effect interface {
	Init(ctx InitContext) error
	Activate(parent *graph.Node) (*graph.Node, error)
	SetParams(params Params) error
	Deactivate() error
}
