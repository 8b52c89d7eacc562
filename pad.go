// seehuhn.de/go/ink - capture and render freehand ink input
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ink

import (
	"image/color"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// A Pad turns pointer events into ink. Strokes are captured while the
// pointer is down, committed to the current gesture on release, and
// rendered through a two-layer scheme: finished strokes live in an
// off-screen Buffer, the stroke being drawn is rendered directly on
// every frame.
//
// A Pad is not safe for concurrent use. All methods must be called
// from the same goroutine as the Scheduler callbacks, for example by
// driving everything through a single Loop.
type Pad struct {
	// Redraw, if set, is called whenever the pad contents changed and
	// the display should be refreshed.
	Redraw func()

	// Enabled controls whether pointer events are processed. While the
	// pad is disabled, events are accepted but ignored.
	Enabled bool

	sched     Scheduler
	style     Style
	buf       *Buffer
	gesture   *Gesture
	points    []Point
	live      *path.Data
	anchor    vec.Vec2
	capturing bool
	listeners []Listener
	fade      fader
}

// NewPad returns a new, enabled pad using sched for fade timing. The
// pad has no buffer until Resize is called; until then finished strokes
// are only recorded, not rendered.
func NewPad(sched Scheduler) *Pad {
	return &Pad{
		Enabled: true,
		sched:   sched,
		style:   DefaultStyle(),
	}
}

// Style returns the pad's current stroke style.
func (p *Pad) Style() Style {
	return p.style
}

// SetColor changes the ink color. If a finished gesture is on display,
// it is re-rendered in the new color.
func (p *Pad) SetColor(col color.NRGBA) {
	p.style = p.style.WithColor(col)
	if p.gesture != nil && !p.capturing && p.buf != nil {
		p.buf.Clear()
		p.gesture.Draw(p.buf, p.style)
	}
	p.invalidate()
}

// CurrentGesture returns the gesture being assembled, or nil if the pad
// is empty. The gesture grows as further strokes are captured.
func (p *Pad) CurrentGesture() *Gesture {
	return p.gesture
}

// SetCurrentGesture replaces the pad contents with g. Any capture in
// progress and any running fade are abandoned. Passing nil clears the
// pad.
func (p *Pad) SetCurrentGesture(g *Gesture) {
	p.fade.stop()
	p.endCapture()
	p.gesture = g
	if p.buf != nil {
		p.buf.Clear()
		if g != nil {
			g.Draw(p.buf, p.style)
		}
	}
	p.invalidate()
}

// CurrentStroke returns a copy of the points of the stroke currently
// being captured, or nil if the pointer is up.
func (p *Pad) CurrentStroke() []Point {
	if !p.capturing {
		return nil
	}
	return slices.Clone(p.points)
}

// Clear removes all ink from the pad. With fadeOut set the ink fades
// away gradually instead of vanishing at once; a pointer press during
// the fade discards the remainder immediately.
func (p *Pad) Clear(fadeOut bool) {
	p.endCapture()
	if fadeOut && p.gesture != nil {
		p.fade.start(p)
	} else {
		p.fade.stop()
		p.gesture = nil
		if p.buf != nil {
			p.buf.Clear()
		}
	}
	p.invalidate()
}

// Resize sets the pixel size of the ink buffer. The buffer never
// shrinks, so ink is preserved when the pad is made smaller and then
// large again. Non-positive dimensions are ignored.
func (p *Pad) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if p.buf != nil {
		oldW, oldH := p.buf.Size()
		width = max(width, oldW)
		height = max(height, oldH)
		if width == oldW && height == oldH {
			return
		}
	}
	p.buf = NewBuffer(width, height)
	if p.gesture != nil {
		p.gesture.Draw(p.buf, p.style)
	}
}

// Draw renders the pad contents onto c: first the committed ink buffer,
// at reduced opacity while a fade is running, then the live stroke.
func (p *Pad) Draw(c Canvas) {
	if p.buf != nil {
		opacity := 1.0
		if p.fade.active {
			opacity = p.fade.alpha
		}
		c.DrawImage(p.buf.Image(), opacity)
	}
	if p.capturing && p.live != nil {
		c.DrawPath(p.live, p.style)
	}
}

// HandlePointer feeds one pointer event into the capture state machine.
// The return value reports whether the pad wants to keep receiving the
// event stream, which it always does.
func (p *Pad) HandlePointer(ev Event) bool {
	if !p.Enabled {
		return true
	}

	switch ev.Kind {
	case Press:
		p.pointerDown(ev)
	case Move:
		p.pointerMove(ev)
	case Release:
		p.pointerUp(ev)
	}
	p.invalidate()
	return true
}

func (p *Pad) pointerDown(ev Event) {
	if p.fade.active {
		// Drawing over a fading gesture discards it.
		p.fade.stop()
		p.gesture = nil
		if p.buf != nil {
			p.buf.Clear()
		}
	}

	p.anchor = vec.Vec2{X: ev.X, Y: ev.Y}

	// Listeners are notified before the capture state is set up, so
	// they observe the raw event only.
	p.notifyStart(ev)

	if p.gesture == nil {
		p.gesture = &Gesture{}
	}
	p.points = append(p.points[:0], Point{X: ev.X, Y: ev.Y, Time: ev.Time})
	p.live = (&path.Data{}).MoveTo(p.anchor)
	p.capturing = true
}

func (p *Pad) pointerMove(ev Event) {
	if !p.capturing {
		// Move without a preceding press, e.g. a drag which started
		// outside the pad.
		return
	}

	p.anchor, _ = extendSmoothed(p.live, p.anchor, ev.X, ev.Y)
	p.points = append(p.points, Point{X: ev.X, Y: ev.Y, Time: ev.Time})

	p.notifyProgress(ev)
}

func (p *Pad) pointerUp(ev Event) {
	if !p.capturing {
		return
	}

	p.gesture.AddStroke(NewStroke(p.points))
	if p.buf != nil {
		p.buf.DrawPath(p.live, p.style)
	}
	p.points = nil
	p.live = nil
	p.capturing = false

	p.notifyFinish(ev)
}

// endCapture abandons a capture in progress without committing the
// stroke.
func (p *Pad) endCapture() {
	p.points = nil
	p.live = nil
	p.capturing = false
}

func (p *Pad) invalidate() {
	if p.Redraw != nil {
		p.Redraw()
	}
}
