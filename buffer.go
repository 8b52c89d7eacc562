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
	"image"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// A Buffer accumulates committed ink off-screen. Strokes are rasterised
// into it once, when they finish, and the whole buffer is composited to
// the screen on every frame.
type Buffer struct {
	img *image.RGBA
	ras *Rasterizer
}

// NewBuffer returns an empty ink buffer of the given size in pixels.
func NewBuffer(width, height int) *Buffer {
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	return &Buffer{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: NewRasterizer(clip),
	}
}

// Size returns the buffer dimensions in pixels.
func (b *Buffer) Size() (width, height int) {
	bounds := b.img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// Clear makes the buffer fully transparent again.
func (b *Buffer) Clear() {
	pix := b.img.Pix
	for i := range pix {
		pix[i] = 0
	}
}

// DrawPath strokes p into the buffer with the given style.
func (b *Buffer) DrawPath(p *path.Data, style Style) {
	b.ras.Reset(b.ras.Clip)
	b.ras.Stroke(p, style, func(y, xMin int, coverage []float32) {
		blendRow(b.img, y, xMin, coverage, style.Color)
	})
}

// Image returns the backing image. The buffer retains ownership; the
// caller must not modify the pixels.
func (b *Buffer) Image() *image.RGBA {
	return b.img
}
