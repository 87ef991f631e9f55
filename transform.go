package reed

import "math"

// affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type affine [6]float64

var identityAffine = affine{1, 0, 0, 1, 0, 0}

// localAffine computes a node's local matrix.
// Composition order: Translate(-Pivot) -> Scale -> Rotate -> Translate(X, Y).
func localAffine(n *Node) affine {
	sin, cos := math.Sincos(n.Rotation)
	a := cos * n.ScaleX
	b := sin * n.ScaleX
	c := -sin * n.ScaleY
	d := cos * n.ScaleY
	tx := -(a*n.PivotX + c*n.PivotY)
	ty := -(b*n.PivotX + d*n.PivotY)
	return affine{a, b, c, d, tx + n.X, ty + n.Y}
}

// mul returns p * c (c applied first).
func (p affine) mul(c affine) affine {
	return affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invert returns the inverse matrix, or identity when m is singular.
func (m affine) invert() affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityAffine
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func (m affine) apply(v Vec2) Vec2 {
	return Vec2{m[0]*v.X + m[2]*v.Y + m[4], m[1]*v.X + m[3]*v.Y + m[5]}
}

// updateWorldTransform recomputes dirty world matrices below n. A recomputed
// parent forces recomputation of its whole subtree.
func updateWorldTransform(n *Node, parent affine, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parent.mul(localAffine(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetPivot sets the node's PivotX and PivotY and marks it dirty.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
	n.transformDirty = true
}

// MarkDirty forces the node's world transform to be recomputed before the
// next input sample is routed. Useful after setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal converts a scene-space point to this node's local space.
func (n *Node) WorldToLocal(p Vec2) Vec2 {
	return n.worldTransform.invert().apply(p)
}

// LocalToWorld converts a local-space point to scene space.
func (n *Node) LocalToWorld(p Vec2) Vec2 {
	return n.worldTransform.apply(p)
}
