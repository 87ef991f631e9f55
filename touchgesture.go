package reed

import (
	"math"
	"time"
)

// pinchSample is the geometry of two live touch points.
type pinchSample struct {
	centroid Vec2
	screen   Vec2
	spread   float64
	angle    float64 // degrees
}

func samplePair(a, b *TouchPoint) pinchSample {
	d := b.ScenePosition.Sub(a.ScenePosition)
	return pinchSample{
		centroid: a.ScenePosition.Add(b.ScenePosition).Scale(0.5),
		screen:   a.ScreenPosition.Add(b.ScreenPosition).Scale(0.5),
		spread:   d.Len(),
		angle:    math.Atan2(d.Y, d.X) * 180 / math.Pi,
	}
}

// angleDelta returns b - a normalized to (-180, 180].
func angleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// touchGestureDetector derives scroll, zoom, rotate, and swipe samples from
// tracked touch frames for backends that only report raw contacts.
type touchGestureDetector struct {
	s *Scene

	// two-point tracking
	tracking  bool
	origin    pinchSample
	prev      pinchSample
	prevTime  time.Time
	velocity  Vec2
	scrolling bool
	zooming   bool
	rotating  bool

	// whole-session tracking, for swipes
	started       bool
	continuous    bool
	startTime     time.Time
	startCentroid Vec2
	lastCentroid  Vec2
	lastScreen    Vec2
	maxCount      int
}

func (d *touchGestureDetector) reset() {
	*d = touchGestureDetector{s: d.s}
}

// abort is called when the touch session is aborted. Gestures the
// detector started are abandoned with no finish event.
func (d *touchGestureDetector) abort() {
	s := d.s
	if d.scrolling {
		s.scroll.abandon()
	}
	if d.zooming {
		s.zoom.abandon()
	}
	if d.rotating {
		s.rotate.abandon()
	}
	d.reset()
}

// observe is called after each delivered direct touch frame.
func (d *touchGestureDetector) observe(ts time.Time, points []*TouchPoint, mods KeyModifiers) {
	var active [2]*TouchPoint
	n := 0
	var sum, sumScreen Vec2
	for _, p := range points {
		sum = sum.Add(p.ScenePosition)
		sumScreen = sumScreen.Add(p.ScreenPosition)
		if p.State == TouchReleased {
			continue
		}
		if n < len(active) {
			active[n] = p
		}
		n++
	}
	inv := 1 / float64(len(points))
	centroid, screen := sum.Scale(inv), sumScreen.Scale(inv)
	if !d.started {
		d.started = true
		d.startTime = ts
		d.startCentroid = centroid
	}
	d.lastCentroid, d.lastScreen = centroid, screen
	d.maxCount = max(d.maxCount, n)

	if n == 2 {
		d.track(ts, samplePair(active[0], active[1]), mods)
	} else if d.tracking {
		d.finish(mods)
	}
}

func (d *touchGestureDetector) track(ts time.Time, cur pinchSample, mods KeyModifiers) {
	if !d.tracking {
		d.tracking = true
		d.origin, d.prev = cur, cur
		d.prevTime = ts
		d.velocity = Vec2{}
		return
	}
	s := d.s
	cfg := &s.config
	sm := GestureSample{ScenePosition: cur.centroid, ScreenPosition: cur.screen, TouchCount: 2, Direct: true, Modifiers: mods}

	step := cur.centroid.Sub(d.prev.centroid)
	if dt := ts.Sub(d.prevTime).Seconds(); dt > 0 {
		d.velocity = step.Scale(1 / dt)
	}

	if !d.scrolling {
		if moved := cur.centroid.Sub(d.origin.centroid); moved.Len() > cfg.ScrollThreshold {
			d.scrolling, d.continuous = true, true
			s.scroll.process(GestureStarted, Vec2{}, sm)
			s.scroll.process(GestureUpdating, moved, sm)
		}
	} else if step != (Vec2{}) {
		s.scroll.process(GestureUpdating, step, sm)
	}

	if d.origin.spread > 0 && d.prev.spread > 0 {
		if !d.zooming {
			if f := cur.spread / d.origin.spread; math.Abs(f-1) > cfg.ZoomThreshold {
				d.zooming, d.continuous = true, true
				s.zoom.process(GestureStarted, Vec2{}, sm)
				s.zoom.process(GestureUpdating, Vec2{X: f}, sm)
			}
		} else if cur.spread != d.prev.spread {
			s.zoom.process(GestureUpdating, Vec2{X: cur.spread / d.prev.spread}, sm)
		}
	}

	if !d.rotating {
		if a := angleDelta(d.origin.angle, cur.angle); math.Abs(a) > cfg.RotateThreshold {
			d.rotating, d.continuous = true, true
			s.rotate.process(GestureStarted, Vec2{}, sm)
			s.rotate.process(GestureUpdating, Vec2{X: a}, sm)
		}
	} else if a := angleDelta(d.prev.angle, cur.angle); a != 0 {
		s.rotate.process(GestureUpdating, Vec2{X: a}, sm)
	}

	d.prev = cur
	d.prevTime = ts
}

// finish ends the two-point gestures when the point count leaves two.
// A scroll released while still moving continues with inertia.
func (d *touchGestureDetector) finish(mods KeyModifiers) {
	s := d.s
	sm := GestureSample{ScenePosition: NaNVec2(), ScreenPosition: NaNVec2(), TouchCount: 2, Direct: true, Modifiers: mods}
	if d.scrolling {
		s.scroll.process(GestureFinished, Vec2{}, sm)
		if d.velocity.Len() >= s.config.InertiaMinVelocity {
			s.inertia.start(s.scroll, d.velocity)
		}
	}
	if d.zooming {
		s.zoom.process(GestureFinished, Vec2{}, sm)
	}
	if d.rotating {
		s.rotate.process(GestureFinished, Vec2{}, sm)
	}
	d.tracking, d.scrolling, d.zooming, d.rotating = false, false, false, false
}

// sessionEnded is called once no touch point is live. A short, fast
// session that produced no continuous gesture becomes a swipe.
func (d *touchGestureDetector) sessionEnded(ts time.Time, mods KeyModifiers) {
	if d.tracking {
		d.finish(mods)
	}
	s := d.s
	cfg := &s.config
	if d.started && !d.continuous && ts.Sub(d.startTime) <= cfg.SwipeMaxDuration {
		moved := d.lastCentroid.Sub(d.startCentroid)
		if dir, ok := swipeDirection(moved, cfg.SwipeMinDistance); ok {
			s.swipe.swipe(dir, GestureSample{
				ScenePosition:  d.lastCentroid,
				ScreenPosition: d.lastScreen,
				TouchCount:     d.maxCount,
				Direct:         true,
				Modifiers:      mods,
			})
		}
	}
	d.reset()
}

// swipeDirection returns the dominant axis direction of moved when it
// covers at least minDistance.
func swipeDirection(moved Vec2, minDistance float64) (SwipeDirection, bool) {
	ax, ay := math.Abs(moved.X), math.Abs(moved.Y)
	switch {
	case ax >= ay && ax >= minDistance:
		if moved.X < 0 {
			return SwipeLeft, true
		}
		return SwipeRight, true
	case ay > ax && ay >= minDistance:
		if moved.Y < 0 {
			return SwipeUp, true
		}
		return SwipeDown, true
	}
	return 0, false
}
