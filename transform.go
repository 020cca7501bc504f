package scrollscape

import "math"

// affine3 is a 3D affine matrix stored row-major as a 3x4 block:
//
//	| m[0] m[1] m[2]  m[3]  |
//	| m[4] m[5] m[6]  m[7]  |
//	| m[8] m[9] m[10] m[11] |
//	|  0    0    0     1    |
type affine3 [12]float64

// identityTransform is the identity affine matrix.
var identityTransform = affine3{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties.
//
// Composition order:
//
//	Scale -> Rotate(X) -> Rotate(Y) -> Rotate(Z) applied as Rx*Ry*Rz -> Translate
func computeLocalTransform(n *Node) affine3 {
	sx, cx := math.Sincos(n.Rotation.X)
	sy, cy := math.Sincos(n.Rotation.Y)
	sz, cz := math.Sincos(n.Rotation.Z)

	// Rx * Ry * Rz
	r00 := cy * cz
	r01 := -cy * sz
	r02 := sy
	r10 := cx*sz + sx*sy*cz
	r11 := cx*cz - sx*sy*sz
	r12 := -sx * cy
	r20 := sx*sz - cx*sy*cz
	r21 := sx*cz + cx*sy*sz
	r22 := cx * cy

	s := n.Scale
	p := n.Position
	return affine3{
		r00 * s.X, r01 * s.Y, r02 * s.Z, p.X,
		r10 * s.X, r11 * s.Y, r12 * s.Z, p.Y,
		r20 * s.X, r21 * s.Y, r22 * s.Z, p.Z,
	}
}

// multiplyAffine3 multiplies two affine matrices: result = parent * child.
func multiplyAffine3(p, c affine3) affine3 {
	var out affine3
	for row := 0; row < 3; row++ {
		a0, a1, a2, at := p[row*4], p[row*4+1], p[row*4+2], p[row*4+3]
		out[row*4] = a0*c[0] + a1*c[4] + a2*c[8]
		out[row*4+1] = a0*c[1] + a1*c[5] + a2*c[9]
		out[row*4+2] = a0*c[2] + a1*c[6] + a2*c[10]
		out[row*4+3] = a0*c[3] + a1*c[7] + a2*c[11] + at
	}
	return out
}

// apply transforms point v by m.
func (m affine3) apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// worldTransform returns the node's world matrix, recomputing it only when
// the node or one of its ancestors has been marked dirty.
func (n *Node) worldTransform() affine3 {
	if !n.transformDirty {
		return n.world
	}
	local := computeLocalTransform(n)
	if n.Parent != nil {
		n.world = multiplyAffine3(n.Parent.worldTransform(), local)
	} else {
		n.world = local
	}
	n.transformDirty = false
	return n.world
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	w := n.worldTransform()
	return Vec3{w[3], w[7], w[11]}
}

// LocalToWorld transforms a point from this node's local space to world space.
func (n *Node) LocalToWorld(v Vec3) Vec3 {
	return n.worldTransform().apply(v)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation of its
// world matrix and those of its descendants. Called automatically by
// ApplyPose; call it after writing Position, Rotation or Scale directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}
