package reed

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action    string      `json:"action"`
	X         float64     `json:"x,omitempty"`
	Y         float64     `json:"y,omitempty"`
	FromX     float64     `json:"fromX,omitempty"`
	FromY     float64     `json:"fromY,omitempty"`
	ToX       float64     `json:"toX,omitempty"`
	ToY       float64     `json:"toY,omitempty"`
	DX        float64     `json:"dx,omitempty"`
	DY        float64     `json:"dy,omitempty"`
	Frames    int         `json:"frames,omitempty"`
	Points    []touchStep `json:"points,omitempty"`
	Modifiers []string    `json:"modifiers,omitempty"`
}

// touchStep is one contact of a "touch" action.
type touchStep struct {
	ID    int64   `json:"id"`
	State string  `json:"state"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var touchStateByName = map[string]TouchState{
	"pressed":    TouchPressed,
	"moved":      TouchMoved,
	"stationary": TouchStationary,
	"released":   TouchReleased,
}

var modifierByName = map[string]KeyModifiers{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
}

// TestRunner sequences injected input across frames for scripted
// interaction tests and replays. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner. Actions are click, press,
// move, hover, release, drag, touch, scroll, modifiers, and wait.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "click", "press", "move", "hover", "release", "drag", "scroll", "wait":
	case "touch":
		if len(st.Points) == 0 {
			return fmt.Errorf("touch without points")
		}
		for _, p := range st.Points {
			if _, ok := touchStateByName[strings.ToLower(p.State)]; !ok {
				return fmt.Errorf("unknown touch state %q", p.State)
			}
		}
	case "modifiers":
		if _, err := parseModifiers(st.Modifiers); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseModifiers(names []string) (KeyModifiers, error) {
	var mods KeyModifiers
	for _, n := range names {
		m, ok := modifierByName[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
		mods |= m
	}
	return mods, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called each frame before injected input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQ) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "scroll":
		s.InjectScroll(st.X, st.Y, st.DX, st.DY)
	case "touch":
		pts := make([]SyntheticTouch, len(st.Points))
		for i, p := range st.Points {
			pts[i] = SyntheticTouch{ID: p.ID, State: touchStateByName[strings.ToLower(p.State)], X: p.X, Y: p.Y}
		}
		s.InjectTouch(pts...)
	case "modifiers":
		mods, _ := parseModifiers(st.Modifiers)
		s.InjectModifiers(mods)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQ) == 0 {
		r.done = true
	}
}
