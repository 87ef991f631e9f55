package reed

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// TransferMode is the kind of transfer a drag-and-drop gesture performs.
type TransferMode uint8

const (
	TransferNone TransferMode = iota
	TransferCopy
	TransferMove
	TransferLink
)

var (
	// AnyTransferMode lists every transfer mode.
	AnyTransferMode = []TransferMode{TransferCopy, TransferMove, TransferLink}
	// CopyOrMove lists the copy and move modes.
	CopyOrMove = []TransferMode{TransferCopy, TransferMove}
)

var transferModeNames = [...]string{"NONE", "COPY", "MOVE", "LINK"}

func (m TransferMode) String() string {
	if int(m) < len(transferModeNames) {
		return transferModeNames[m]
	}
	return fmt.Sprintf("TransferMode(%d)", m)
}

// UnmarshalText parses a mode name, case-insensitively.
func (m *TransferMode) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	for i, n := range transferModeNames {
		if n == name {
			*m = TransferMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown transfer mode %q", text)
}

// normalizeModes drops TransferNone and duplicates, keeping the first
// occurrence of each mode.
func normalizeModes(modes []TransferMode) []TransferMode {
	out := make([]TransferMode, 0, len(modes))
	for _, m := range modes {
		if m == TransferNone || m > TransferLink || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// chooseTransferMode picks the mode for a transfer. The proposed mode wins
// when both sides allow it; otherwise the first mode in order both sides
// allow is used.
func chooseTransferMode(supported, accepted []TransferMode, proposed TransferMode, order []TransferMode) TransferMode {
	allowed := func(m TransferMode) bool {
		return m != TransferNone && slices.Contains(supported, m) && slices.Contains(accepted, m)
	}
	if allowed(proposed) {
		return proposed
	}
	for _, m := range order {
		if allowed(m) {
			return m
		}
	}
	return TransferNone
}

// --- Dragboard ---

// Dragboard holds the data a drag-and-drop gesture carries, keyed by
// format name, and the transfer modes its source supports.
type Dragboard struct {
	content map[string]any
	formats []string
	modes   []TransferMode
}

func newDragboard(modes []TransferMode) *Dragboard {
	return &Dragboard{content: make(map[string]any), modes: modes}
}

// Put stores v under format, replacing any previous value.
func (b *Dragboard) Put(format string, v any) {
	if _, ok := b.content[format]; !ok {
		b.formats = append(b.formats, format)
	}
	b.content[format] = v
}

// SetContent replaces the whole content. Formats are kept in sorted order.
func (b *Dragboard) SetContent(content map[string]any) {
	b.Clear()
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.Put(k, content[k])
	}
}

// Content returns the value stored under format.
func (b *Dragboard) Content(format string) (any, bool) {
	v, ok := b.content[format]
	return v, ok
}

// Formats returns the stored formats in insertion order.
func (b *Dragboard) Formats() []string {
	return slices.Clone(b.formats)
}

// TransferModes returns the modes the gesture source supports.
func (b *Dragboard) TransferModes() []TransferMode {
	return slices.Clone(b.modes)
}

// HasContent reports whether any data has been put on the board.
func (b *Dragboard) HasContent() bool {
	return len(b.formats) > 0
}

// Clear removes all content.
func (b *Dragboard) Clear() {
	clear(b.content)
	b.formats = b.formats[:0]
}

// --- Session ---

// DragState is the lifecycle state of a drag-and-drop session.
type DragState uint8

const (
	DragIdle DragState = iota
	DragDetecting
	DragActive
	DragDropping
	DragFinished
)

var dragStateNames = [...]string{"idle", "detecting", "active", "dropping", "finished"}

func (s DragState) String() string {
	if int(s) < len(dragStateNames) {
		return dragStateNames[s]
	}
	return fmt.Sprintf("DragState(%d)", s)
}

// DragSession tracks one drag-and-drop gesture from its start during drag
// detection until DragDone has been delivered to its source.
type DragSession struct {
	ID uuid.UUID

	scene  *Scene
	source *Node
	board  *Dragboard
	state  DragState

	// nodes under the pointer, innermost first, ending with the root
	targets []*Node
	// node that accepted the last DragOver
	potentialTarget *Node
	mode            TransferMode
	// proposed mode of the last DragOver
	proposed TransferMode

	lastScene  Vec2
	lastScreen Vec2
}

func newDragSession(s *Scene, source *Node, modes []TransferMode) *DragSession {
	return &DragSession{
		ID:     uuid.New(),
		scene:  s,
		source: source,
		board:  newDragboard(modes),
		state:  DragIdle,
	}
}

// Source returns the node that started the gesture.
func (d *DragSession) Source() *Node { return d.source }

// Dragboard returns the gesture's data.
func (d *DragSession) Dragboard() *Dragboard { return d.board }

// State returns the session's lifecycle state.
func (d *DragSession) State() DragState { return d.state }

// TransferMode returns the mode negotiated by the last DragOver.
func (d *DragSession) TransferMode() TransferMode { return d.mode }

// PotentialTarget returns the node that accepted the last DragOver, or nil.
func (d *DragSession) PotentialTarget() *Node { return d.potentialTarget }

// Over moves the gesture to a new position. Enter and exit events fire for
// the nodes whose containment changed, then DragOver bubbles from the node
// under the pointer. It returns the accepted mode, or TransferNone.
func (d *DragSession) Over(scene, screen Vec2, proposed TransferMode) TransferMode {
	if d.state != DragDetecting && d.state != DragActive {
		d.scene.logf("drag %s: over in state %s ignored", d.ID, d.state)
		return TransferNone
	}
	s := d.scene
	d.state = DragActive
	d.lastScene, d.lastScreen = scene, screen
	d.proposed = proposed

	s.refreshTransforms()
	target, pick := s.pick(scene)
	if len(d.targets) == 0 || d.targets[0] != target {
		d.potentialTarget = nil
	}
	d.handleExitEnter(chainOf(target), scene, screen, pick)

	ev := d.newEvent(EventDragOver, scene, screen, pick)
	ev.TransferMode = proposed
	bubble(s, target, ev, dragHandler(EventDragOver), &s.handlers.drag)
	s.emitDragEvent(ev)

	if ev.accepted == TransferNone {
		d.potentialTarget = nil
		d.mode = TransferNone
		return TransferNone
	}
	d.potentialTarget = ev.acceptor
	d.mode = ev.accepted
	return d.mode
}

// Exit is called when the pointer leaves the scene while dragging. Every
// node under the pointer gets its exit events.
func (d *DragSession) Exit() {
	if d.state != DragActive {
		return
	}
	d.handleExitEnter(nil, d.lastScene, d.lastScreen, PickResult{Scene: d.lastScene})
	d.potentialTarget = nil
	d.mode = TransferNone
}

// Drop ends the gesture at a position. When the position or the proposed
// mode differs from the last DragOver, one more DragOver runs first so the
// target can renegotiate. DragDropped then bubbles from the node under the
// pointer if the gesture was accepted; the drop counts only if a handler
// marks it completed. Exit events follow, then DragDone is delivered to the
// source. It returns the final mode.
func (d *DragSession) Drop(scene, screen Vec2, proposed TransferMode) TransferMode {
	if d.state != DragDetecting && d.state != DragActive {
		d.scene.logf("drag %s: drop in state %s ignored", d.ID, d.state)
		return TransferNone
	}
	if d.state == DragDetecting || scene != d.lastScene || proposed != d.proposed {
		d.Over(scene, screen, proposed)
	}
	s := d.scene
	d.state = DragDropping
	d.lastScene, d.lastScreen = scene, screen

	s.refreshTransforms()
	target, pick := s.pick(scene)
	result := TransferNone
	if d.mode != TransferNone && d.potentialTarget != nil {
		ev := d.newEvent(EventDragDropped, scene, screen, pick)
		ev.TransferMode = d.mode
		ev.accepted = d.mode
		ev.acceptor = d.potentialTarget
		bubble(s, target, ev, dragHandler(EventDragDropped), &s.handlers.drag)
		s.emitDragEvent(ev)
		if ev.dropCompleted {
			result = ev.accepted
		}
	}
	d.handleExitEnter(nil, scene, screen, pick)
	d.finish(result)
	return result
}

// Cancel abandons the gesture. Targets under the pointer get nothing
// further; only DragDone, reporting TransferNone, reaches the source.
func (d *DragSession) Cancel() {
	if d.state == DragFinished {
		return
	}
	d.targets = nil
	d.finish(TransferNone)
}

// finish delivers DragDone to the source exactly once and detaches the
// session from the scene.
func (d *DragSession) finish(mode TransferMode) {
	s := d.scene
	d.state = DragFinished
	d.potentialTarget = nil
	if s.dnd == d {
		s.dnd = nil
	}
	ev := d.newEvent(EventDragDone, d.lastScene, d.lastScreen, PickResult{Scene: d.lastScene})
	ev.TransferMode = mode
	bubble(s, d.source, ev, dragHandler(EventDragDone), &s.handlers.drag)
	s.emitDragEvent(ev)
	s.logf("drag %s done: %s", d.ID, mode)
}

// handleExitEnter updates the set of nodes under the pointer. Exits go
// innermost first, enters outermost first. Each node gets its own
// Exited/Entered event and a bubbling ExitedTarget/EnteredTarget.
func (d *DragSession) handleExitEnter(chain []*Node, scene, screen Vec2, pick PickResult) {
	s := d.scene
	old := d.targets
	i, j := len(old)-1, len(chain)-1
	for i >= 0 && j >= 0 && old[i] == chain[j] {
		i--
		j--
	}
	for k := 0; k <= i; k++ {
		n := old[k]
		ev := d.newEvent(EventDragExited, scene, screen, pick)
		deliverAt(s, n, ev, dragHandler(EventDragExited), &s.handlers.drag)
		s.emitDragEvent(ev)
		tev := d.newEvent(EventDragExitedTarget, scene, screen, pick)
		bubble(s, n, tev, dragHandler(EventDragExitedTarget), &s.handlers.drag)
	}
	for k := j; k >= 0; k-- {
		n := chain[k]
		ev := d.newEvent(EventDragEntered, scene, screen, pick)
		deliverAt(s, n, ev, dragHandler(EventDragEntered), &s.handlers.drag)
		s.emitDragEvent(ev)
		tev := d.newEvent(EventDragEnteredTarget, scene, screen, pick)
		bubble(s, n, tev, dragHandler(EventDragEnteredTarget), &s.handlers.drag)
	}
	d.targets = chain
}

// chainOf returns n and its ancestors, innermost first.
func chainOf(n *Node) []*Node {
	var chain []*Node
	for ; n != nil; n = n.Parent {
		chain = append(chain, n)
	}
	return chain
}

func (d *DragSession) newEvent(t EventType, scene, screen Vec2, pick PickResult) *DragEvent {
	return &DragEvent{
		eventBase:      eventBase{Type: t},
		GestureSource:  d.source,
		GestureTarget:  d.potentialTarget,
		Dragboard:      d.board,
		TransferMode:   d.mode,
		ScenePosition:  scene,
		ScreenPosition: screen,
		PickResult:     pick,
		available:      d.board.modes,
		session:        d,
	}
}

// --- Event operations ---

// StartDragAndDrop starts a drag-and-drop gesture with the current source
// as gesture source. It is only legal inside a DragDetected handler. The
// gesture begins once the handler returns, and only if the returned
// dragboard holds content by then.
func (e *MouseEvent) StartDragAndDrop(modes ...TransferMode) (*Dragboard, error) {
	s := e.scene
	if s == nil || e.Type != EventDragDetected || s.detecting != e {
		return nil, ErrNotDetecting
	}
	modes = normalizeModes(modes)
	if len(modes) == 0 {
		return nil, ErrNoTransferModes
	}
	if s.pendingDrag != nil {
		s.pendingDrag.source = e.Source
		s.pendingDrag.board.modes = modes
		return s.pendingDrag.board, nil
	}
	s.pendingDrag = newDragSession(s, e.Source, modes)
	return s.pendingDrag.board, nil
}

// AcceptTransferModes accepts the gesture with one of modes. During
// DragOver the proposed mode is preferred, then the configured fallback
// order; nothing is accepted when no mode fits. During DragDropped the
// drop may switch to any mode the source supports; the event's
// TransferMode keeps the negotiated mode and AcceptedTransferMode reports
// the switch.
func (e *DragEvent) AcceptTransferModes(modes ...TransferMode) error {
	if e.session == nil {
		return fmt.Errorf("%w: event has no drag session", ErrIllegalState)
	}
	order := e.session.scene.config.TransferModeOrder
	switch e.Type {
	case EventDragOver:
		e.accepted = chooseTransferMode(e.available, modes, e.TransferMode, order)
		e.acceptor = nil
		if e.accepted != TransferNone {
			e.acceptor = e.Source
		}
		return nil
	case EventDragDropped:
		if len(modes) == 0 {
			return nil
		}
		m := chooseTransferMode(e.available, modes, e.TransferMode, order)
		if m == TransferNone {
			return fmt.Errorf("%w: %v not in %v", ErrUnsupportedTransfer, modes, e.available)
		}
		e.accepted = m
		e.acceptor = e.Source
		return nil
	}
	return fmt.Errorf("%w: accept during %s", ErrIllegalState, e.Type)
}

// SetDropCompleted marks the drop as performed. Only legal during
// DragDropped.
func (e *DragEvent) SetDropCompleted(completed bool) error {
	if e.Type != EventDragDropped {
		return fmt.Errorf("%w: drop completed during %s", ErrIllegalState, e.Type)
	}
	e.dropCompleted = completed
	return nil
}

// IsDropCompleted reports whether a handler marked the drop completed.
func (e *DragEvent) IsDropCompleted() bool {
	return e.dropCompleted
}
