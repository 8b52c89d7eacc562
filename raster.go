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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge represents a line segment of the stroke outline in device
// coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Rasterizer converts smoothed ink paths into antialiased pixel coverage
// values, the fraction of each pixel's area covered by the stroked path.
// Coverage is delivered row-by-row through an emit callback. Create one
// instance and reuse it for multiple paths; internal buffers grow as
// needed but never shrink, achieving zero allocations in steady state.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Internal buffers (reused across calls)
	cover     []float32 // coverage accumulation: cover change per pixel; reused as output
	area      []float32 // coverage accumulation: area within pixel
	edges     []edge    // outline edges for the current path
	activeIdx []int     // indices of active edges

	// Centerline flattening buffers
	pts        []vec.Vec2 // flattened centerline points, all subpaths contiguous
	ptsOffsets []int      // start index of each subpath in pts
	dots       []vec.Vec2 // zero-length subpaths (isolated points)

	// Outline scratch buffer, one polygon at a time
	poly []vec.Vec2

	// Edge collection state (used by addPolygon/addEdge)
	edgeBBoxFirst bool    // true if no edges added yet
	edgeXMin      float64 // outline bounding box in device space
	edgeXMax      float64
	edgeYMin      float64
	edgeYMax      float64
}

// NewRasterizer returns a Rasterizer bounded by the given clip rectangle.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{Clip: clip}
}

// Reset prepares the Rasterizer for reuse with a new clip rectangle,
// keeping internal buffer capacity.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Clip = clip
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.pts = r.pts[:0]
	r.ptsOffsets = r.ptsOffsets[:0]
	r.dots = r.dots[:0]
	r.poly = r.poly[:0]
}

// addPolygon adds a closed outline polygon to the edge list. The polygon
// is reoriented if necessary so that all outline polygons wind the same
// way; the nonzero winding rule then paints overlapping pieces exactly
// once instead of cancelling them out.
func (r *Rasterizer) addPolygon(poly []vec.Vec2) {
	if len(poly) < 3 {
		return
	}

	// Shoelace formula for twice the signed area.
	area2 := 0.0
	prev := poly[len(poly)-1]
	for _, p := range poly {
		area2 += prev.X*p.Y - p.X*prev.Y
		prev = p
	}

	if area2 >= 0 {
		prev = poly[len(poly)-1]
		for _, p := range poly {
			r.addEdge(prev, p)
			prev = p
		}
	} else {
		prev = poly[0]
		for i := len(poly) - 1; i >= 0; i-- {
			r.addEdge(prev, poly[i])
			prev = poly[i]
		}
	}
}

// addEdge adds a single outline edge in device coordinates.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	// Skip horizontal edges; they never change coverage.
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeXMin = min(p0.X, p1.X)
		r.edgeXMax = max(p0.X, p1.X)
		r.edgeYMin = min(p0.Y, p1.Y)
		r.edgeYMax = max(p0.Y, p1.Y)
		r.edgeBBoxFirst = false
	} else {
		r.edgeXMin = min(r.edgeXMin, min(p0.X, p1.X))
		r.edgeXMax = max(r.edgeXMax, max(p0.X, p1.X))
		r.edgeYMin = min(r.edgeYMin, min(p0.Y, p1.Y))
		r.edgeYMax = max(r.edgeYMax, max(p0.Y, p1.Y))
	}
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a pixel contributes:
//   cover = sign * dy   (where sign is +1 for downward, -1 for upward)
//   area  = cover * (1 - xFrac)   (where xFrac is the horizontal position within the pixel)
//
// Final coverage is computed by integrateScanline:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]   (carry forward for next pixel)
//
// This computes the signed area of the outline within each pixel, which
// gives antialiased coverage values when clamped to [0,1].

// fillOutline rasterises the collected outline edges scanline by scanline
// using an active edge list, and emits the nonzero-rule coverage of each
// row that received ink.
func (r *Rasterizer) fillOutline(emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}

	// Clamp the outline bounding box to the clip and convert to integers.
	xMin := max(int(math.Floor(r.edgeXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.edgeXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.edgeYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.edgeYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	// Sort edges by their upper end so the active list can be filled
	// incrementally while scanning downwards.
	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(r.edges) {
			e := &r.edges[nextEdge]
			if min(e.y0, e.y1) >= yfNext {
				break
			}
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}

		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		sawEdge := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]

			// Drop edges that end above this scanline.
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}

			r.accumulateEdge(e, y, xMin, xMax)
			sawEdge = true
			i++
		}

		if !sawEdge {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// accumulateEdge adds one edge's contribution within scanline y to the
// cover and area buffers, which are indexed by (x - bboxXMin). Edges
// spanning several pixel columns are split at the column boundaries.
func (r *Rasterizer) accumulateEdge(e *edge, y, bboxXMin, bboxXMax int) {
	// Portion of the edge within this scanline [y, y+1).
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	// +1 for downward edges, -1 for upward ones.
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)

	xLeft, xRight := xAtYTop, xAtYBot
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	// Entirely left of the buffer: full contribution carried into column 0.
	if pixRight < bboxXMin {
		coverVal := sign * float32(yBot-yTop)
		r.cover[0] += coverVal
		r.area[0] += coverVal
		return
	}
	// Entirely right of the buffer: no contribution.
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateInColumn(e, yTop, yBot, sign, pixLeft, bboxXMin, bboxXMax)
		return
	}

	// The edge crosses column boundaries; handle each column separately
	// using the y-extent of the edge within that column.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtPixLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtPixRight := e.y0 + dydx*(float64(pix+1)-e.x0)

		segYMin := max(min(yAtPixLeft, yAtPixRight), yTop)
		segYMax := min(max(yAtPixLeft, yAtPixRight), yBot)
		segDy := segYMax - segYMin
		if segDy <= 0 {
			continue
		}

		coverVal := sign * float32(segDy)

		yMid := (segYMin + segYMax) / 2
		xMid := e.x0 + e.dxdy*(yMid-e.y0)
		xFrac := xMid - float64(pix)
		areaVal := coverVal * float32(1-xFrac)

		if pix < bboxXMin {
			r.cover[0] += coverVal
			r.area[0] += coverVal
		} else if pix < bboxXMax {
			idx := pix - bboxXMin
			r.cover[idx] += coverVal
			r.area[idx] += areaVal
		}
	}
}

// accumulateInColumn handles an edge segment confined to one pixel column.
func (r *Rasterizer) accumulateInColumn(e *edge, yTop, yBot float64, sign float32, pix, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		r.cover[0] += coverVal
		r.area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)

	idx := pix - bboxXMin
	r.cover[idx] += coverVal
	r.area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline converts accumulated cover/area values to final
// nonzero-rule coverage. The cover slice is modified in place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		// clamp(abs(raw), 0, 1)
		cov := raw
		if raw < 0 {
			cov = -raw
		}
		if cov > 1 {
			cov = 1
		}
		cover[i] = cov
	}
}

// trimZeros returns the non-zero portion of coverage and its starting
// offset, or nil if the row is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// Numerical tolerances for the rasterizer.
const (
	// defaultFlatness is the default curve flattening tolerance in
	// device pixels; 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit converts miter joins to bevels when the interior
	// angle is less than approximately 11.5 degrees.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length for a stroke segment.
	// Shorter segments are coalesced.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold detects nearly collinear segments where no
	// join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold is the cosine threshold for detecting cusps
	// (path doubling back on itself). cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
