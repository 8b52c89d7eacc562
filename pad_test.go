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
	"testing"
	"time"

	"seehuhn.de/go/geom/path"
)

// fakeScheduler implements Scheduler with manually fired timers, so
// that fade animations can be stepped deterministically in tests.
type fakeScheduler struct {
	pending []*fakeTimer
}

type fakeTimer struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (s *fakeScheduler) Schedule(delay time.Duration, fn func()) func() {
	timer := &fakeTimer{delay: delay, fn: fn}
	s.pending = append(s.pending, timer)
	return func() { timer.cancelled = true }
}

// fire runs the oldest pending timer. It returns false if no live
// timer is left.
func (s *fakeScheduler) fire() bool {
	for len(s.pending) > 0 {
		timer := s.pending[0]
		s.pending = s.pending[1:]
		if timer.cancelled {
			continue
		}
		timer.fn()
		return true
	}
	return false
}

func newTestPad() (*Pad, *fakeScheduler) {
	sched := &fakeScheduler{}
	return NewPad(sched), sched
}

func press(p *Pad, x, y float64, t int64) {
	p.HandlePointer(Event{Kind: Press, X: x, Y: y, Time: t})
}

func move(p *Pad, x, y float64, t int64) {
	p.HandlePointer(Event{Kind: Move, X: x, Y: y, Time: t})
}

func release(p *Pad, x, y float64, t int64) {
	p.HandlePointer(Event{Kind: Release, X: x, Y: y, Time: t})
}

func TestCaptureSequence(t *testing.T) {
	p, _ := newTestPad()

	press(p, 10, 10, 0)
	move(p, 20, 10, 10)
	move(p, 21, 11, 20)

	pts := p.CurrentStroke()
	if len(pts) != 3 {
		t.Fatalf("got %d points during capture, want 3", len(pts))
	}
	if pts[0] != (Point{X: 10, Y: 10, Time: 0}) {
		t.Errorf("first point is %v", pts[0])
	}

	release(p, 21, 11, 30)

	g := p.CurrentGesture()
	if g == nil || g.Len() != 1 {
		t.Fatalf("gesture not committed: %v", g)
	}
	stroke := g.Strokes()[0]
	if stroke.Len() != 3 {
		t.Errorf("committed stroke has %d points, want 3", stroke.Len())
	}

	// The first move exceeds the smoothing tolerance and adds a curve
	// segment; the second stays within tolerance of the new anchor.
	cmds := stroke.Path().Cmds
	want := []path.Command{path.CmdMoveTo, path.CmdQuadTo}
	if len(cmds) != len(want) {
		t.Fatalf("stroke path has %d commands, want %d", len(cmds), len(want))
	}
	for i, cmd := range cmds {
		if cmd != want[i] {
			t.Errorf("command %d is %v, want %v", i, cmd, want[i])
		}
	}
}

func TestCurrentStrokeIdle(t *testing.T) {
	p, _ := newTestPad()
	if pts := p.CurrentStroke(); pts != nil {
		t.Errorf("idle pad reports a current stroke: %v", pts)
	}

	press(p, 1, 1, 0)
	release(p, 1, 1, 10)
	if pts := p.CurrentStroke(); pts != nil {
		t.Errorf("pad reports a current stroke after release: %v", pts)
	}
}

func TestStrayEvents(t *testing.T) {
	p, _ := newTestPad()

	// Move and release without a preceding press must be ignored.
	move(p, 5, 5, 0)
	release(p, 5, 5, 10)

	if p.CurrentGesture() != nil {
		t.Error("stray events created a gesture")
	}
	if p.CurrentStroke() != nil {
		t.Error("stray events started a capture")
	}
}

func TestDisabled(t *testing.T) {
	p, _ := newTestPad()
	p.Enabled = false

	press(p, 1, 1, 0)
	move(p, 9, 9, 10)
	release(p, 9, 9, 20)

	if p.CurrentGesture() != nil || p.CurrentStroke() != nil {
		t.Error("disabled pad captured ink")
	}
}

func TestMultipleStrokes(t *testing.T) {
	p, _ := newTestPad()

	press(p, 10, 10, 0)
	move(p, 30, 10, 10)
	release(p, 30, 10, 20)

	press(p, 10, 30, 100)
	move(p, 30, 30, 110)
	release(p, 30, 30, 120)

	g := p.CurrentGesture()
	if g == nil || g.Len() != 2 {
		t.Fatalf("got %d strokes, want 2", g.Len())
	}
}

func TestClearImmediate(t *testing.T) {
	p, _ := newTestPad()
	p.Resize(40, 40)

	press(p, 10, 20, 0)
	move(p, 30, 20, 10)
	release(p, 30, 20, 20)

	if !bufferHasInk(p.buf) {
		t.Fatal("committed stroke left no ink in the buffer")
	}

	p.Clear(false)

	if p.CurrentGesture() != nil {
		t.Error("gesture survived Clear")
	}
	if bufferHasInk(p.buf) {
		t.Error("ink survived Clear")
	}
}

func TestClearDuringCapture(t *testing.T) {
	p, _ := newTestPad()

	press(p, 10, 10, 0)
	move(p, 20, 10, 10)
	p.Clear(false)

	if p.CurrentStroke() != nil {
		t.Error("capture survived Clear")
	}

	// The dangling release must not commit anything.
	release(p, 20, 10, 20)
	if g := p.CurrentGesture(); g != nil && g.Len() != 0 {
		t.Errorf("dangling release committed a stroke: %v", g)
	}
}

func TestFadeCompletes(t *testing.T) {
	p, sched := newTestPad()
	p.Resize(40, 40)

	press(p, 10, 20, 0)
	move(p, 30, 20, 10)
	release(p, 30, 20, 20)

	p.Clear(true)

	if p.CurrentGesture() == nil {
		t.Fatal("gesture removed before fade finished")
	}

	steps := 0
	for sched.fire() {
		steps++
		if steps > 100 {
			t.Fatal("fade does not terminate")
		}
	}

	// 1/0.03 rounds up to 34 ticks.
	if steps != 34 {
		t.Errorf("fade took %d ticks, want 34", steps)
	}
	if p.CurrentGesture() != nil {
		t.Error("gesture survived the fade")
	}
	if bufferHasInk(p.buf) {
		t.Error("ink survived the fade")
	}
}

func TestFadeOpacity(t *testing.T) {
	p, sched := newTestPad()
	p.Resize(40, 40)

	press(p, 10, 20, 0)
	move(p, 30, 20, 10)
	release(p, 30, 20, 20)

	p.Clear(true)
	for range 10 {
		sched.fire()
	}

	c := NewImageCanvas(40, 40)
	p.Draw(c)

	// After 10 ticks the buffer is composited at opacity 0.7.
	_, _, _, a := c.Img.At(20, 20).RGBA()
	got := float64(a) / 0xffff
	if got < 0.65 || got > 0.75 {
		t.Errorf("faded pixel has alpha %.3f, want about 0.7", got)
	}
}

func TestFadeCancelledByPress(t *testing.T) {
	p, sched := newTestPad()
	p.Resize(40, 40)

	press(p, 10, 20, 0)
	move(p, 30, 20, 10)
	release(p, 30, 20, 20)

	p.Clear(true)
	for range 10 {
		sched.fire()
	}

	// Starting a new stroke discards the fading ink at once.
	press(p, 5, 5, 1000)

	if bufferHasInk(p.buf) {
		t.Error("fading ink survived the new press")
	}
	if g := p.CurrentGesture(); g == nil || g.Len() != 0 {
		t.Errorf("expected a fresh empty gesture, got %v", g)
	}

	// The cancelled timer must not fire again.
	if sched.fire() {
		t.Error("fade timer still live after cancellation")
	}

	release(p, 5, 5, 1010)
	if g := p.CurrentGesture(); g.Len() != 1 {
		t.Errorf("got %d strokes after the new stroke, want 1", g.Len())
	}
}

func TestFadeClearOnEmptyPad(t *testing.T) {
	p, sched := newTestPad()

	// Fading an empty pad must not start an animation.
	p.Clear(true)
	if sched.fire() {
		t.Error("fade timer scheduled for an empty pad")
	}
}

func TestSetCurrentGesture(t *testing.T) {
	p, _ := newTestPad()
	p.Resize(40, 40)

	g := &Gesture{}
	g.AddStroke(NewStroke([]Point{
		{X: 5, Y: 20, Time: 0},
		{X: 35, Y: 20, Time: 10},
	}))

	p.SetCurrentGesture(g)

	if p.CurrentGesture() != g {
		t.Error("gesture not installed")
	}
	if !bufferHasInk(p.buf) {
		t.Error("installed gesture not rendered")
	}

	p.SetCurrentGesture(nil)
	if p.CurrentGesture() != nil || bufferHasInk(p.buf) {
		t.Error("pad not empty after installing nil gesture")
	}
}

func TestSetColor(t *testing.T) {
	p, _ := newTestPad()
	p.Resize(40, 40)

	press(p, 5, 20, 0)
	move(p, 35, 20, 10)
	release(p, 35, 20, 20)

	r0, g0, b0, _ := p.buf.Image().At(20, 20).RGBA()
	if r0 == 0 || g0 == 0 || b0 != 0 {
		t.Fatalf("default ink is not yellow: %d %d %d", r0, g0, b0)
	}

	red := color.NRGBA{R: 0xff, A: 0xff}
	p.SetColor(red)

	r1, g1, _, _ := p.buf.Image().At(20, 20).RGBA()
	if r1 == 0 || g1 != 0 {
		t.Errorf("committed ink not re-rendered in red: %d %d", r1, g1)
	}
}

func TestSetColorDuringCapture(t *testing.T) {
	p, _ := newTestPad()
	p.Resize(40, 40)

	press(p, 5, 20, 0)
	move(p, 35, 20, 10)

	// Changing the color mid-stroke must not touch the buffer; the
	// stroke is not committed yet.
	p.SetColor(color.NRGBA{R: 0xff, A: 0xff})
	if bufferHasInk(p.buf) {
		t.Error("color change painted the uncommitted stroke")
	}

	release(p, 35, 20, 20)
	r, _, _, _ := p.buf.Image().At(20, 20).RGBA()
	if r == 0 {
		t.Error("stroke not committed in the new color")
	}
}

func TestResize(t *testing.T) {
	p, _ := newTestPad()

	// Non-positive sizes are ignored.
	p.Resize(0, 10)
	p.Resize(10, -1)
	if p.buf != nil {
		t.Fatal("buffer allocated for invalid size")
	}

	p.Resize(20, 20)
	press(p, 5, 10, 0)
	move(p, 15, 10, 10)
	release(p, 15, 10, 20)

	// Growing preserves committed ink.
	p.Resize(40, 30)
	w, h := p.buf.Size()
	if w != 40 || h != 30 {
		t.Errorf("buffer size is %dx%d, want 40x30", w, h)
	}
	if !bufferHasInk(p.buf) {
		t.Error("ink lost on resize")
	}

	// The buffer never shrinks.
	p.Resize(10, 10)
	if w, h := p.buf.Size(); w != 40 || h != 30 {
		t.Errorf("buffer shrank to %dx%d", w, h)
	}
}

func TestTapLeavesDot(t *testing.T) {
	p, _ := newTestPad()
	p.Resize(40, 40)

	press(p, 20, 20, 0)
	release(p, 20, 20, 10)

	_, _, _, a := p.buf.Image().At(20, 20).RGBA()
	if a == 0 {
		t.Error("tap left no mark")
	}
}

func TestDrawLiveStroke(t *testing.T) {
	p, _ := newTestPad()
	p.Resize(40, 40)

	press(p, 5, 20, 0)
	move(p, 35, 20, 10)

	// The uncommitted stroke is not in the buffer but must appear in
	// the composited output.
	if bufferHasInk(p.buf) {
		t.Error("uncommitted stroke rendered into the buffer")
	}

	c := NewImageCanvas(40, 40)
	p.Draw(c)
	_, _, _, a := c.Img.At(20, 20).RGBA()
	if a == 0 {
		t.Error("live stroke not drawn")
	}
}

type recordingListener struct {
	name string
	log  *[]string
}

func (l *recordingListener) GestureStart(p *Pad, ev Event) {
	*l.log = append(*l.log, l.name+":start")
}
func (l *recordingListener) GestureProgress(p *Pad, ev Event) {
	*l.log = append(*l.log, l.name+":progress")
}
func (l *recordingListener) GestureFinish(p *Pad, ev Event) {
	*l.log = append(*l.log, l.name+":finish")
}

func TestListenerOrder(t *testing.T) {
	p, _ := newTestPad()
	var log []string
	p.AddListener(&recordingListener{name: "a", log: &log})
	p.AddListener(&recordingListener{name: "b", log: &log})

	press(p, 1, 1, 0)
	move(p, 9, 1, 10)
	release(p, 9, 1, 20)

	want := []string{
		"a:start", "b:start",
		"a:progress", "b:progress",
		"a:finish", "b:finish",
	}
	if len(log) != len(want) {
		t.Fatalf("got %d notifications, want %d: %v", len(log), len(want), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("notification %d is %q, want %q", i, log[i], want[i])
		}
	}
}

// selfRemovingListener removes itself on the first notification.
type selfRemovingListener struct {
	pad *Pad
	log *[]string
}

func (l *selfRemovingListener) GestureStart(p *Pad, ev Event) {
	*l.log = append(*l.log, "self:start")
	l.pad.RemoveListener(l)
}
func (l *selfRemovingListener) GestureProgress(p *Pad, ev Event) {
	*l.log = append(*l.log, "self:progress")
}
func (l *selfRemovingListener) GestureFinish(p *Pad, ev Event) {
	*l.log = append(*l.log, "self:finish")
}

func TestListenerRemoveDuringDispatch(t *testing.T) {
	p, _ := newTestPad()
	var log []string
	p.AddListener(&selfRemovingListener{pad: p, log: &log})
	p.AddListener(&recordingListener{name: "b", log: &log})

	press(p, 1, 1, 0)
	release(p, 1, 1, 10)

	// The removal must not disturb the dispatch in progress, and the
	// removed listener receives no further notifications.
	want := []string{"self:start", "b:start", "b:finish"}
	if len(log) != len(want) {
		t.Fatalf("got notifications %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("notification %d is %q, want %q", i, log[i], want[i])
		}
	}
}

// startStateListener records what the pad reports while the start
// notification is being delivered.
type startStateListener struct {
	pad        *Pad
	sawStroke  []Point
	sawGesture *Gesture
}

func (l *startStateListener) GestureStart(p *Pad, ev Event) {
	l.sawStroke = l.pad.CurrentStroke()
	l.sawGesture = l.pad.CurrentGesture()
}
func (l *startStateListener) GestureProgress(p *Pad, ev Event) {}
func (l *startStateListener) GestureFinish(p *Pad, ev Event)   {}

func TestListenerStartSeesRawEvent(t *testing.T) {
	p, _ := newTestPad()
	l := &startStateListener{pad: p}
	p.AddListener(l)

	press(p, 10, 10, 0)

	// At notification time the event is not yet recorded: no buffered
	// points, and on a fresh pad no gesture either.
	if l.sawStroke != nil {
		t.Errorf("listener saw %d buffered points during start, want none",
			len(l.sawStroke))
	}
	if l.sawGesture != nil {
		t.Error("listener saw a gesture before the first stroke")
	}

	// Capture proceeds normally once the notification is delivered.
	if pts := p.CurrentStroke(); len(pts) != 1 {
		t.Errorf("got %d points after press, want 1", len(pts))
	}

	// On later strokes the existing gesture is visible to listeners.
	release(p, 10, 10, 10)
	press(p, 20, 20, 100)
	if l.sawGesture == nil || l.sawGesture.Len() != 1 {
		t.Errorf("listener saw %v during second start, want the committed gesture",
			l.sawGesture)
	}
}

func TestListenerDuplicate(t *testing.T) {
	p, _ := newTestPad()
	var log []string
	l := &recordingListener{name: "a", log: &log}
	p.AddListener(l)
	p.AddListener(l)

	press(p, 1, 1, 0)
	if len(log) != 2 {
		t.Errorf("duplicate listener notified %d times, want 2", len(log))
	}

	// Removing takes out one registration at a time.
	p.RemoveListener(l)
	log = log[:0]
	release(p, 1, 1, 10)
	if len(log) != 1 {
		t.Errorf("got %d notifications after removal, want 1", len(log))
	}
}

func TestRedrawCallback(t *testing.T) {
	p, _ := newTestPad()
	calls := 0
	p.Redraw = func() { calls++ }

	press(p, 1, 1, 0)
	move(p, 9, 1, 10)
	release(p, 9, 1, 20)

	if calls != 3 {
		t.Errorf("Redraw called %d times, want 3", calls)
	}
}

// bufferHasInk reports whether any pixel of the buffer is non-transparent.
func bufferHasInk(b *Buffer) bool {
	for _, v := range b.img.Pix {
		if v != 0 {
			return true
		}
	}
	return false
}
