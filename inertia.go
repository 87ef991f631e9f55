package reed

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// inertiaDriver continues a finished scroll with synthesized inertia
// updates. Speed eases from the release velocity down to zero over
// Config.InertiaDuration. There is no global animation manager; the scene
// advances it from Advance.
type inertiaDriver struct {
	s     *Scene
	rec   *Recognizer
	dir   Vec2
	speed *gween.Tween
}

func (d *inertiaDriver) start(rec *Recognizer, velocity Vec2) {
	v := velocity.Len()
	if v == 0 || d.s.config.InertiaDuration <= 0 {
		return
	}
	d.rec = rec
	d.dir = velocity.Scale(1 / v)
	d.speed = gween.New(float32(v), 0, float32(d.s.config.InertiaDuration.Seconds()), ease.OutQuad)
	d.s.logf("%s inertia started at %.1f px/s", rec.kind, v)
}

// active reports whether inertia updates are pending.
func (d *inertiaDriver) active() bool {
	return d.speed != nil
}

// advance moves the inertia forward by dt seconds, delivering at most one
// update. It stops when the speed reaches zero or the gesture no longer
// accepts inertia.
func (d *inertiaDriver) advance(dt float64) {
	if d.speed == nil {
		return
	}
	speed, done := d.speed.Update(float32(dt))
	if delta := d.dir.Scale(float64(speed) * dt); delta != (Vec2{}) {
		if !d.rec.inertiaUpdate(delta) {
			done = true
		}
	}
	if done {
		d.stop()
	}
}

func (d *inertiaDriver) stop() {
	d.speed = nil
	d.rec = nil
}

// cancelInertia is called on every discrete tap. Synthesized inertia
// stops, and platform inertia for already finished gestures is dropped.
func (s *Scene) cancelInertia() {
	if s.inertia.active() {
		s.logf("inertia cancelled by tap")
	}
	s.inertia.stop()
	s.scroll.cancelInertia()
	s.zoom.cancelInertia()
	s.rotate.cancelInertia()
}
