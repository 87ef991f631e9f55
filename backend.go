package reed

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenInput polls ebiten once per tick and feeds the scene: the cursor
// and buttons go to the mouse pipeline, the wheel to the scroll recognizer,
// and touches to the touch tracker as one direct frame.
//
// Scene coordinates are ebiten's logical screen coordinates. Screen
// coordinates add the window position.
type ebitenInput struct {
	touchIDs    []ebiten.TouchID
	pressedIDs  []ebiten.TouchID
	releasedIDs []ebiten.TouchID
}

func (b *ebitenInput) poll(s *Scene) {
	mods := readModifiers()
	wx, wy := ebiten.WindowPosition()
	origin := Vec2{float64(wx), float64(wy)}

	b.pollTouches(s, origin, mods)
	if len(b.touchIDs) == 0 && len(b.releasedIDs) == 0 {
		// ebiten also reports the first touch as a cursor on some
		// platforms; only poll the mouse when no contact is down.
		b.pollMouse(s, origin, mods)
	}
	b.pollWheel(s, origin, mods)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

func (b *ebitenInput) pollMouse(s *Scene, origin Vec2, mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	scene := Vec2{float64(mx), float64(my)}

	// Keep the press-time button while it is held so the interaction does
	// not switch buttons midway.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case s.mouse.down:
			button = s.mouse.button
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	s.ProcessPointer(scene, scene.Add(origin), pressed, button, mods)
}

func (b *ebitenInput) pollWheel(s *Scene, origin Vec2, mods KeyModifiers) {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	scene := Vec2{float64(mx), float64(my)}
	scale := s.config.WheelScale
	s.ProcessScroll(GestureUpdating, Vec2{dx * scale, dy * scale}, GestureSample{
		ScenePosition:  scene,
		ScreenPosition: scene.Add(origin),
		Modifiers:      mods,
	})
}

// pollTouches reports every contact down this tick plus the ones released
// since the last tick. Released contacts use their previous-tick position.
func (b *ebitenInput) pollTouches(s *Scene, origin Vec2, mods KeyModifiers) {
	b.touchIDs = ebiten.AppendTouchIDs(b.touchIDs[:0])
	b.pressedIDs = inpututil.AppendJustPressedTouchIDs(b.pressedIDs[:0])
	b.releasedIDs = inpututil.AppendJustReleasedTouchIDs(b.releasedIDs[:0])
	b.releasedIDs = slices.DeleteFunc(b.releasedIDs, func(id ebiten.TouchID) bool {
		return slices.Contains(b.touchIDs, id)
	})
	n := len(b.touchIDs) + len(b.releasedIDs)
	if n == 0 {
		return
	}

	t := s.touches
	f := t.BeginFrame(s.Now(), n, true, mods)
	for _, id := range b.touchIDs {
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		state := TouchStationary
		switch {
		case slices.Contains(b.pressedIDs, id):
			state = TouchPressed
		case x != px || y != py:
			state = TouchMoved
		}
		scene := Vec2{float64(x), float64(y)}
		if err := t.ReportPoint(f, state, int64(id), scene, scene.Add(origin)); err != nil {
			s.reportError(err)
			return
		}
	}
	for _, id := range b.releasedIDs {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		scene := Vec2{float64(x), float64(y)}
		if err := t.ReportPoint(f, TouchReleased, int64(id), scene, scene.Add(origin)); err != nil {
			s.reportError(err)
			return
		}
	}
	s.reportError(t.EndFrame(f))
}
