package reed

import "fmt"

// GrabRegistry holds per-touch-point target overrides. While a point is
// grabbed its events go to the grab node, with local coordinates computed
// in that node's space, and picking is skipped. A grab lasts until the
// point is released or ungrabbed.
//
// A press grabs its point to the picked target, so a contact keeps
// delivering to the node it started on unless a handler ungrabs it.
type GrabRegistry struct {
	tracker *TouchTracker
	nodes   map[int]*Node
}

// Grab pins touch point id to n. A nil n ungrabs. The point must be live.
func (g *GrabRegistry) Grab(id int, n *Node) error {
	if _, ok := g.tracker.pointByID(id); !ok {
		return fmt.Errorf("%w: grab of touch point %d", ErrUnknownTouchID, id)
	}
	if n == nil {
		delete(g.nodes, id)
		return nil
	}
	g.nodes[id] = n
	return nil
}

// GrabCurrent pins touch point id to the node whose touch handler is
// currently running. It fails outside of touch event delivery.
func (g *GrabRegistry) GrabCurrent(id int) error {
	ev := g.tracker.dispatching
	if ev == nil || ev.Source == nil {
		return fmt.Errorf("%w: grab of touch point %d outside touch delivery", ErrIllegalState, id)
	}
	return g.Grab(id, ev.Source)
}

// Ungrab removes any grab on touch point id.
func (g *GrabRegistry) Ungrab(id int) {
	delete(g.nodes, id)
}

// Grabbed returns the node touch point id is grabbed to.
func (g *GrabRegistry) Grabbed(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *GrabRegistry) reset() {
	clear(g.nodes)
}
