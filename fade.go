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

import "time"

// fader animates the gradual disappearance of committed ink. While a
// fade is running the ink buffer is composited at decreasing opacity;
// when the opacity reaches zero the buffer and the gesture are
// discarded.
type fader struct {
	active bool
	alpha  float64
	cancel func()
}

func (f *fader) start(p *Pad) {
	f.stop()
	f.active = true
	f.alpha = 1
	f.schedule(p)
}

// stop halts a running fade without completing it. Calling stop on an
// idle fader has no effect.
func (f *fader) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.active = false
	f.alpha = 1
}

func (f *fader) schedule(p *Pad) {
	f.cancel = p.sched.Schedule(fadeInterval, func() {
		f.step(p)
	})
}

func (f *fader) step(p *Pad) {
	if !f.active {
		return
	}
	f.alpha -= fadeStep
	if f.alpha <= 0 {
		f.active = false
		f.alpha = 1
		f.cancel = nil
		p.gesture = nil
		if p.buf != nil {
			p.buf.Clear()
		}
	} else {
		f.schedule(p)
	}
	p.invalidate()
}

const (
	// fadeStep is the opacity decrease per animation tick, so a full
	// fade takes ceil(1/fadeStep) ticks.
	fadeStep = 0.03

	// fadeInterval is the delay between animation ticks.
	fadeInterval = 100 * time.Millisecond
)
