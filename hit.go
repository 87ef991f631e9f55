package reed

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside the rectangle. Edges are inside.
func (r HitRect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c HitCircle) Contains(p Vec2) bool {
	dx := p.X - c.CenterX
	dy := p.Y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether p lies inside the polygon using a cross-product sign test.
func (poly HitPolygon) Contains(p Vec2) bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := poly.Points[i]
		b := poly.Points[(i+1)%n]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Picking ---

// PickResult describes what a scene position resolved to. Node is nil when
// nothing was hit; the event target is then the scene root.
type PickResult struct {
	Node  *Node
	Scene Vec2
	Local Vec2
}

// PickProvider resolves a scene position to the node that should receive
// input there. It must return a non-nil target; a miss resolves to the
// scene root.
type PickProvider interface {
	Pick(scene Vec2) (*Node, PickResult)
}

// scenePicker is the default PickProvider: a topmost-first hit test over
// the scene tree.
type scenePicker struct {
	s *Scene
}

func (p scenePicker) Pick(scene Vec2) (*Node, PickResult) {
	if n := p.s.hitTest(scene); n != nil {
		return n, PickResult{Node: n, Scene: scene, Local: n.WorldToLocal(scene)}
	}
	root := p.s.root
	return root, PickResult{Scene: scene, Local: root.WorldToLocal(scene)}
}

// nodeContainsLocal tests whether local point p falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Width and Height.
func nodeContainsLocal(n *Node, p Vec2) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(p)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return p.X >= 0 && p.X <= n.Width && p.Y >= 0 && p.Y <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending pickable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Width != 0 || n.Height != 0 {
		buf = append(buf, n)
	}
	if len(n.children) == 0 {
		return buf
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	children := n.children
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost pickable node at a scene position.
// Returns nil if nothing is hit.
func (s *Scene) hitTest(scene Vec2) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		if nodeContainsLocal(n, n.WorldToLocal(scene)) {
			return n
		}
	}
	return nil
}

// pick resolves a scene position through the configured PickProvider.
func (s *Scene) pick(scene Vec2) (*Node, PickResult) {
	target, res := s.picker.Pick(scene)
	if target == nil {
		target = s.root
	}
	return target, res
}
