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
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Point is a single position sample of a stroke. Points are immutable
// values; each belongs to exactly one [Stroke].
type Point struct {
	X, Y float64
	Time int64 // monotonic event time in milliseconds
}

// Stroke is one continuous press-to-release motion, stored as the ordered
// sequence of all recorded samples. A Stroke is immutable after
// construction; the constructor copies its input.
type Stroke struct {
	points []Point
}

// NewStroke creates a stroke from the given samples.
// A finalized stroke contains at least one point.
func NewStroke(points []Point) *Stroke {
	return &Stroke{points: slices.Clone(points)}
}

// Points returns the recorded samples in arrival order.
// Callers must not modify the returned slice.
func (s *Stroke) Points() []Point {
	return s.points
}

// Len returns the number of recorded samples.
func (s *Stroke) Len() int {
	return len(s.points)
}

// Path returns the stroke's renderable path: a smoothed curve built from
// the recorded samples with the same coalescing rule used for live ink
// feedback, so committed strokes redraw exactly as they were shown while
// being drawn.
func (s *Stroke) Path() *path.Data {
	p := &path.Data{}
	if len(s.points) == 0 {
		return p
	}
	anchor := vec.Vec2{X: s.points[0].X, Y: s.points[0].Y}
	p.MoveTo(anchor)
	for _, pt := range s.points[1:] {
		anchor, _ = extendSmoothed(p, anchor, pt.X, pt.Y)
	}
	return p
}

// Gesture is an ordered sequence of strokes forming one user input.
// Strokes are appended one at a time; consumers may read a gesture at any
// time, including while further strokes are still being captured.
type Gesture struct {
	strokes []*Stroke
}

// AddStroke appends a finished stroke to the gesture.
func (g *Gesture) AddStroke(s *Stroke) {
	g.strokes = append(g.strokes, s)
}

// Strokes returns the strokes in the order they were added.
// Callers must not modify the returned slice.
func (g *Gesture) Strokes() []*Stroke {
	return g.strokes
}

// Len returns the number of strokes.
func (g *Gesture) Len() int {
	return len(g.strokes)
}

// Draw renders all strokes onto dst with the given style.
func (g *Gesture) Draw(dst PathDrawer, style Style) {
	for _, s := range g.strokes {
		dst.DrawPath(s.Path(), style)
	}
}

// smoothTolerance is the minimum displacement, in either axis, before the
// live path is extended towards a new sample. Smaller movements are still
// recorded in the point sequence but visually coalesced; this reduces path
// complexity and rejects pointer jitter.
const smoothTolerance = 4

// extendSmoothed extends p towards (x, y) if the displacement from anchor
// reaches smoothTolerance in either axis. The new curve segment is a
// quadratic with the old anchor as control point, ending at the midpoint
// between the old anchor and the new position. It returns the new anchor
// and reports whether the path was extended.
func extendSmoothed(p *path.Data, anchor vec.Vec2, x, y float64) (vec.Vec2, bool) {
	dx := math.Abs(x - anchor.X)
	dy := math.Abs(y - anchor.Y)
	if dx < smoothTolerance && dy < smoothTolerance {
		return anchor, false
	}
	mid := vec.Vec2{X: (x + anchor.X) / 2, Y: (y + anchor.Y) / 2}
	p.QuadTo(anchor, mid)
	return vec.Vec2{X: x, Y: y}, true
}
