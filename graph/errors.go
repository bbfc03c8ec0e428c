package graph

import "errors"

// Errors returned by structural graph operations.
var (
	// ErrNilNode is returned when a nil node is passed to a structural operation.
	ErrNilNode = errors.New("graph: nil node")

	// ErrDestroyed is returned when operating on a destroyed node.
	ErrDestroyed = errors.New("graph: node destroyed")

	// ErrHasParent is returned when attaching a node that is already attached.
	ErrHasParent = errors.New("graph: node already has a parent")

	// ErrForeignNode is returned when attaching a node created by another scene.
	ErrForeignNode = errors.New("graph: node belongs to another scene")

	// ErrCycle is returned when an attachment would make a node its own ancestor.
	ErrCycle = errors.New("graph: attachment would create a cycle")

	// ErrDuplicateID is returned when creating a node with an identifier in use.
	ErrDuplicateID = errors.New("graph: duplicate node id")
)
