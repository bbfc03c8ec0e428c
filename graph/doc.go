// Package graph provides the retained render graph that effect pipelines
// splice into.
//
// A [Scene] owns a tree of [Node] values rooted at [Scene.Root]. Nodes are
// created through the scene so that every node has a unique identifier and
// can be resolved with [Scene.Node]. The tree is mutated with a small set of
// structural operations:
//
//   - [Node.Add] and [Node.InsertAt] attach detached nodes under a parent
//   - [Node.DisconnectNodes] detaches and returns all children in order
//   - [Node.RemoveNodes] detaches and destroys all children
//   - [Node.Detach] and [Node.Destroy] act on a single node
//
// Nodes carry an opaque payload ([Node.Data]) interpreted by renderers, and
// emit change notifications that observers subscribe to with [Node.On].
// View ([KindLookAt]) and projection ([KindCamera]) nodes emit [EventMatrix]
// whenever their payload changes.
//
// The scene also acts as the host scheduler: [Scene.OnTick] registers a
// per-frame callback and [Scene.Tick] runs them. [Scene.RenderFrame] submits
// the tree to the configured [Renderer].
//
// A Scene and its nodes are not safe for concurrent use. All calls are
// expected from the goroutine driving the frame loop.
package graph
