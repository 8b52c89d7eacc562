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

// Package trace provides synthetic pointer event sequences for testing
// and benchmarking ink capture.
package trace

import (
	"math"

	"seehuhn.de/go/ink"
)

// A Trace is a recorded or generated sequence of pointer events forming
// one or more complete strokes.
type Trace struct {
	Name   string
	Events []ink.Event
}

// Replay feeds all events of the trace into p in order.
func (tr *Trace) Replay(p *ink.Pad) {
	for _, ev := range tr.Events {
		p.HandlePointer(ev)
	}
}

// Tap returns a trace of a single press and release at (x, y).
func Tap(x, y float64) *Trace {
	return &Trace{
		Name: "tap",
		Events: []ink.Event{
			{Kind: ink.Press, X: x, Y: y, Time: 0},
			{Kind: ink.Release, X: x, Y: y, Time: 10},
		},
	}
}

// Zigzag returns a trace sweeping left to right while alternating
// between y0 and y1, with n direction changes.
func Zigzag(x0, x1, y0, y1 float64, n int) *Trace {
	tr := &Trace{Name: "zigzag"}
	t := int64(0)
	emit := func(kind ink.Kind, x, y float64) {
		tr.Events = append(tr.Events, ink.Event{Kind: kind, X: x, Y: y, Time: t})
		t += 10
	}

	emit(ink.Press, x0, y0)
	for i := 1; i <= n; i++ {
		x := x0 + (x1-x0)*float64(i)/float64(n)
		y := y0
		if i%2 == 1 {
			y = y1
		}
		emit(ink.Move, x, y)
	}
	last := tr.Events[len(tr.Events)-1]
	emit(ink.Release, last.X, last.Y)
	return tr
}

// Spiral returns a trace following an Archimedean spiral around
// (cx, cy), growing from radius 0 to rMax over the given number of
// turns, sampled at n points.
func Spiral(cx, cy, rMax float64, turns, n int) *Trace {
	tr := &Trace{Name: "spiral"}
	t := int64(0)
	for i := 0; i <= n; i++ {
		s := float64(i) / float64(n)
		phi := s * float64(turns) * 2 * math.Pi
		r := s * rMax

		kind := ink.Move
		if i == 0 {
			kind = ink.Press
		} else if i == n {
			kind = ink.Release
		}
		tr.Events = append(tr.Events, ink.Event{
			Kind: kind,
			X:    cx + r*math.Cos(phi),
			Y:    cy + r*math.Sin(phi),
			Time: t,
		})
		t += 10
	}
	return tr
}

// All returns a fixed set of traces covering taps, corners and long
// smooth curves, sized for a 200 by 200 pad.
func All() []*Trace {
	return []*Trace{
		Tap(100, 100),
		Zigzag(20, 180, 40, 160, 8),
		Spiral(100, 100, 80, 3, 120),
	}
}
