package reed

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(p Vec2) bool
}

// nodeIDCounter is a plain counter (no atomic; reed is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is an element of the retained scene tree that input is routed to.
// Events delivered to a node bubble to its ancestors, ending at the scene
// root.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform affine
	transformDirty bool

	// Visible=false or Interactable=false removes the whole subtree from
	// picking.
	Visible      bool
	Interactable bool

	// Ordering among siblings; higher is on top.
	ZIndex int

	// Hit testing. With no HitShape a node is hit by the rectangle
	// (0, 0, Width, Height) in local space; zero size means not pickable.
	HitShape      HitShape
	Width, Height float64

	// Metadata
	UserData any
	EntityID uint32

	// Per-node callbacks (nil by default; zero cost when unused). They run
	// while an event bubbles from its target through the ancestors.
	OnTouch  func(*TouchEvent)
	OnMouse  func(*MouseEvent)
	OnScroll func(*GestureEvent)
	OnZoom   func(*GestureEvent)
	OnRotate func(*GestureEvent)
	OnSwipe  func(*GestureEvent)

	// OnDragEntered and OnDragExited only fire when this node itself is
	// entered or exited. The Target variants also fire for descendants.
	OnDragEntered       func(*DragEvent)
	OnDragExited        func(*DragEvent)
	OnDragEnteredTarget func(*DragEvent)
	OnDragExitedTarget  func(*DragEvent)
	OnDragOver          func(*DragEvent)
	OnDragDropped       func(*DragEvent)
	OnDragDone          func(*DragEvent)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.Interactable = true
	n.worldTransform = identityAffine
	n.transformDirty = true
	n.childrenSorted = true
}

// NewNode creates an interactable node hit by the rectangle
// (0, 0, width, height) in its local space.
func NewNode(name string, width, height float64) *Node {
	n := &Node{Name: name, Width: width, Height: height}
	nodeDefaults(n)
	return n
}

// NewContainer creates a node with no hit area of its own. It still
// receives events bubbling up from its children.
func NewContainer(name string) *Node {
	return NewNode(name, 0, 0)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("reed: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("reed: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("reed: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("reed: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("reed: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("reed: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// IsDescendantOf reports whether n lies in the subtree rooted at ancestor,
// counting ancestor itself.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	return ancestor != nil && isAncestor(ancestor, n)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.OnTouch = nil
	n.OnMouse = nil
	n.OnScroll = nil
	n.OnZoom = nil
	n.OnRotate = nil
	n.OnSwipe = nil
	n.OnDragEntered = nil
	n.OnDragExited = nil
	n.OnDragEnteredTarget = nil
	n.OnDragExitedTarget = nil
	n.OnDragOver = nil
	n.OnDragDropped = nil
	n.OnDragDone = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// rebuildSortedChildren refreshes the ZIndex-ordered view of n's children.
// Stable insertion sort; siblings with equal ZIndex keep insertion order.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}
