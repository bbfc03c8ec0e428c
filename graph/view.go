package graph

import "math"

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LookAt is the payload of a [KindLookAt] node: the viewing transform.
type LookAt struct {
	Eye  Vec3
	Look Vec3
	Up   Vec3
}

// Distance returns the distance from the eye to the point looked at.
func (l LookAt) Distance() float64 {
	return l.Look.Sub(l.Eye).Len()
}

// Optics is the payload of a [KindCamera] node: the projection parameters.
type Optics struct {
	// Near is the distance to the near clipping plane.
	Near float64

	// Far is the distance to the far clipping plane.
	Far float64

	// FovY is the vertical field of view in degrees.
	FovY float64
}

// DefaultOptics returns the projection used when a camera has no payload.
func DefaultOptics() Optics {
	return Optics{Near: 0.1, Far: 10000, FovY: 45}
}

// LookAtOf returns the viewing transform of a [KindLookAt] node.
func LookAtOf(n *Node) (LookAt, bool) {
	if n == nil || n.kind != KindLookAt {
		return LookAt{}, false
	}
	l, ok := n.data.(LookAt)
	return l, ok
}

// OpticsOf returns the projection of a [KindCamera] node.
// A camera without an Optics payload reports [DefaultOptics].
func OpticsOf(n *Node) (Optics, bool) {
	if n == nil || n.kind != KindCamera {
		return Optics{}, false
	}
	if o, ok := n.data.(Optics); ok {
		return o, true
	}
	return DefaultOptics(), true
}
