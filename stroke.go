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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders p as a stroked outline with the given style. The emit
// callback receives coverage row-by-row; its slice argument is valid only
// during the call.
//
// The outline is built as a set of polygons, one per centerline segment
// plus wedges for joins and caps, and filled as a single compound path
// under the nonzero winding rule so that self-overlapping ink is painted
// exactly once.
func (r *Rasterizer) Stroke(p *path.Data, style Style, emit func(y, xMin int, coverage []float32)) {
	d := style.Width / 2
	if d <= 0 {
		return
	}

	r.flattenPath(p, style.flatness())
	if len(r.ptsOffsets) == 0 && len(r.dots) == 0 {
		return
	}

	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	for i := range r.ptsOffsets {
		r.outlineSubpath(r.subpathPoints(i), d, style)
	}
	for _, pt := range r.dots {
		r.outlineDot(pt, d, style.Cap, style.flatness())
	}

	r.fillOutline(emit)
}

// subpathPoints returns the flattened centerline of subpath i as a slice
// into pts.
func (r *Rasterizer) subpathPoints(i int) []vec.Vec2 {
	start := r.ptsOffsets[i]
	end := len(r.pts)
	if i+1 < len(r.ptsOffsets) {
		end = r.ptsOffsets[i+1]
	}
	return r.pts[start:end]
}

// flattenPath walks the path and converts every subpath into a polyline,
// stored contiguously in r.pts with start indices in r.ptsOffsets.
// Consecutive coincident points are coalesced; subpaths that collapse to
// a single point are collected in r.dots instead.
func (r *Rasterizer) flattenPath(p *path.Data, flatness float64) {
	r.pts = r.pts[:0]
	r.ptsOffsets = r.ptsOffsets[:0]
	r.dots = r.dots[:0]

	start := -1 // index into pts where the open subpath begins, -1 if none

	push := func(v vec.Vec2) {
		if len(r.pts) > start {
			last := r.pts[len(r.pts)-1]
			dx := v.X - last.X
			dy := v.Y - last.Y
			if dx*dx+dy*dy < zeroLengthThreshold*zeroLengthThreshold {
				return
			}
		}
		r.pts = append(r.pts, v)
	}
	endSubpath := func() {
		if start < 0 {
			return
		}
		if len(r.pts)-start < 2 {
			// Single point: no direction, becomes a dot.
			r.dots = append(r.dots, r.pts[start])
			r.pts = r.pts[:start]
		} else {
			r.ptsOffsets = append(r.ptsOffsets, start)
		}
		start = -1
	}

	var current, subStart vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			endSubpath()
			current = p.Coords[coordIdx]
			coordIdx++
			subStart = current
			start = len(r.pts)
			r.pts = append(r.pts, current)

		case path.CmdLineTo:
			pt := p.Coords[coordIdx]
			coordIdx++
			if start >= 0 {
				push(pt)
			}
			current = pt

		case path.CmdQuadTo:
			ctrl := p.Coords[coordIdx]
			end := p.Coords[coordIdx+1]
			coordIdx += 2
			if start >= 0 {
				r.flattenQuad(current, ctrl, end, flatness, push)
			}
			current = end

		case path.CmdCubeTo:
			c1 := p.Coords[coordIdx]
			c2 := p.Coords[coordIdx+1]
			end := p.Coords[coordIdx+2]
			coordIdx += 3
			if start >= 0 {
				r.flattenCube(current, c1, c2, end, flatness, push)
			}
			current = end

		case path.CmdClose:
			if start >= 0 {
				push(subStart)
				endSubpath()
			}
			current = subStart
		}
	}
	endSubpath()
}

// flattenQuad flattens a quadratic Bézier into line segments and pushes
// the interior and end points. p0 is the current point, p1 the control,
// p2 the endpoint.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2, flatness float64, push func(vec.Vec2)) {
	// Error vector e = (P0 - 2*P1 + P2) / 4 bounds the distance between
	// the curve and its chord.
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if errLen := e.Length(); errLen > flatness {
		n = int(math.Ceil(math.Sqrt(errLen / flatness)))
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)²P0 + 2(1-t)tP1 + t²P2
		omt := 1 - t
		push(p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t)))
	}
}

// flattenCube flattens a cubic Bézier using Wang's formula for the
// segment count.
func (r *Rasterizer) flattenCube(p0, p1, p2, p3 vec.Vec2, flatness float64, push func(vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	m := max(d1.Length(), d2.Length())

	n := 1
	if m > 0 {
		if nFloat := math.Sqrt(3 * m / (4 * flatness)); nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		push(p0.Mul(omt2 * omt).
			Add(p1.Mul(3 * omt2 * t)).
			Add(p2.Mul(3 * omt * t2)).
			Add(p3.Mul(t2 * t)))
	}
}

// outlineSubpath emits the outline polygons for one centerline polyline:
// a quad per segment, a wedge per interior corner, and caps at both ends.
func (r *Rasterizer) outlineSubpath(pts []vec.Vec2, d float64, style Style) {
	flat := style.flatness()

	var prevT vec.Vec2
	var lastEnd vec.Vec2
	first := true
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dir := b.Sub(a)
		length := dir.Length()
		if length < zeroLengthThreshold {
			continue
		}
		t := dir.Mul(1 / length)
		n := vec.Vec2{X: -t.Y, Y: t.X}
		off := n.Mul(d)

		r.poly = append(r.poly[:0], a.Add(off), b.Add(off), b.Sub(off), a.Sub(off))
		r.addPolygon(r.poly)

		if first {
			r.addCap(a, t.Mul(-1), d, style.Cap, flat)
			first = false
		} else {
			r.addJoin(a, prevT, t, d, style, flat)
		}
		prevT = t
		lastEnd = b
	}

	if first {
		// All segments degenerate; flattenPath routes these to dots,
		// but keep the outline well defined regardless.
		r.outlineDot(pts[0], d, style.Cap, flat)
		return
	}
	r.addCap(lastEnd, prevT, d, style.Cap, flat)
}

// addJoin emits the wedge polygon filling the gap on the outer side of a
// corner where the tangent changes from t1 to t2.
func (r *Rasterizer) addJoin(p vec.Vec2, t1, t2 vec.Vec2, d float64, style Style, flat float64) {
	cosT := t1.Dot(t2)
	sinT := t1.X*t2.Y - t1.Y*t2.X

	// Nearly collinear continuation: segment quads already overlap.
	if sinT > -collinearityThreshold && sinT < collinearityThreshold && cosT > 0 {
		return
	}

	// A cusp leaves a gap wider than any join wedge; close it with caps
	// on both incoming and outgoing direction.
	if cosT < cuspCosineThreshold {
		r.addCap(p, t1, d, style.Cap, flat)
		r.addCap(p, t2.Mul(-1), d, style.Cap, flat)
		return
	}

	// The gap sits on the outer side of the corner: the -N side for
	// sinT > 0 and the +N side otherwise.
	sign := 1.0
	if sinT > 0 {
		sign = -1
	}
	n1 := vec.Vec2{X: -t1.Y * sign, Y: t1.X * sign}
	n2 := vec.Vec2{X: -t2.Y * sign, Y: t2.X * sign}

	switch style.Join {
	case graphics.LineJoinRound:
		// Arc from the first outer offset to the second; the rotation
		// taking t1 to t2 also takes n1 to n2.
		phi := math.Atan2(sinT, cosT)
		r.poly = append(r.poly[:0], p)
		r.poly = appendArc(r.poly, p, d, n1, phi, flat)
		r.addPolygon(r.poly)

	case graphics.LineJoinMiter:
		// sin(φ/2) where φ is the interior angle of the stroke corner.
		sinHalf := math.Sqrt((1 + cosT) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > miterEpsilon && 1/sinHalf <= defaultMiterLimit+miterEpsilon {
			bis := n1.Add(n2)
			if l := bis.Length(); l > zeroLengthThreshold {
				bis = bis.Mul(1 / l)
				miterPt := p.Add(bis.Mul(d / sinHalf))
				r.poly = append(r.poly[:0], p, p.Add(n1.Mul(d)), miterPt, p.Add(n2.Mul(d)))
				r.addPolygon(r.poly)
				return
			}
		}
		fallthrough

	default: // bevel
		r.poly = append(r.poly[:0], p, p.Add(n1.Mul(d)), p.Add(n2.Mul(d)))
		r.addPolygon(r.poly)
	}
}

// addCap emits the cap polygon at point p. t is the outward tangent
// direction, pointing away from the stroked line.
func (r *Rasterizer) addCap(p vec.Vec2, t vec.Vec2, d float64, cap graphics.LineCapStyle, flat float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}

	switch cap {
	case graphics.LineCapButt:
		// The segment quad already ends flush at p.

	case graphics.LineCapSquare:
		ext := t.Mul(d)
		r.poly = append(r.poly[:0],
			p.Add(n.Mul(d)),
			p.Add(n.Mul(d)).Add(ext),
			p.Sub(n.Mul(d)).Add(ext),
			p.Sub(n.Mul(d)),
		)
		r.addPolygon(r.poly)

	case graphics.LineCapRound:
		// Semicircle from +N through t to -N; the chord closes it.
		r.poly = appendArc(r.poly[:0], p, d, n, -math.Pi, flat)
		r.addPolygon(r.poly)
	}
}

// outlineDot emits the mark left by a zero-length stroke: a full disc for
// round caps, a square for square caps, nothing for butt caps.
func (r *Rasterizer) outlineDot(p vec.Vec2, d float64, cap graphics.LineCapStyle, flat float64) {
	switch cap {
	case graphics.LineCapRound:
		r.poly = appendArc(r.poly[:0], p, d, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, flat)
		r.addPolygon(r.poly)

	case graphics.LineCapSquare:
		r.poly = append(r.poly[:0],
			vec.Vec2{X: p.X + d, Y: p.Y + d},
			vec.Vec2{X: p.X + d, Y: p.Y - d},
			vec.Vec2{X: p.X - d, Y: p.Y - d},
			vec.Vec2{X: p.X - d, Y: p.Y + d},
		)
		r.addPolygon(r.poly)
	}
}

// appendArc appends the vertices of a circular arc to poly, including
// both endpoints. startDir is the unit vector from center to the arc
// start, sweep the signed sweep angle in radians.
func appendArc(poly []vec.Vec2, center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, flat float64) []vec.Vec2 {
	if radius < flat {
		// Arc too small to matter: endpoints only.
		poly = append(poly, center.Add(startDir.Mul(radius)))
		cos, sin := math.Cos(sweep), math.Sin(sweep)
		endDir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		return append(poly, center.Add(endDir.Mul(radius)))
	}

	// For a chord subtending angle θ, the maximum deviation (sagitta) is
	// radius*(1 - cos(θ/2)); solving for tolerance flat gives the step.
	angleStep := 2 * math.Acos(1-flat/radius)
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/angleStep)), 1)

	dt := sweep / float64(n)
	for i := 0; i <= n; i++ {
		angle := float64(i) * dt
		cos, sin := math.Cos(angle), math.Sin(angle)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		poly = append(poly, center.Add(dir.Mul(radius)))
	}
	return poly
}
