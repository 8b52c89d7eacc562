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
	"image/color"
	"image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// PathDrawer is the minimal drawing surface needed to render a gesture.
type PathDrawer interface {
	// DrawPath strokes p with the given style.
	DrawPath(p *path.Data, style Style)
}

// Canvas is a drawing surface a Pad can paint onto. Implementations
// translate the calls to whatever backend they wrap, for example an
// image or a GUI frame.
type Canvas interface {
	PathDrawer

	// DrawImage composites img onto the canvas at the origin, scaled by
	// the given opacity in the range [0, 1].
	DrawImage(img image.Image, opacity float64)
}

// ImageCanvas is a Canvas backed by an RGBA image.
type ImageCanvas struct {
	Img *image.RGBA

	ras *Rasterizer
}

// NewImageCanvas returns a canvas drawing into a new image of the given
// size.
func NewImageCanvas(width, height int) *ImageCanvas {
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	return &ImageCanvas{
		Img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: NewRasterizer(clip),
	}
}

// Fill sets every pixel of the canvas to the given color.
func (c *ImageCanvas) Fill(col color.NRGBA) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawPath strokes p directly onto the canvas image.
func (c *ImageCanvas) DrawPath(p *path.Data, style Style) {
	c.ras.Reset(c.ras.Clip)
	c.ras.Stroke(p, style, func(y, xMin int, coverage []float32) {
		blendRow(c.Img, y, xMin, coverage, style.Color)
	})
}

// DrawImage composites img over the canvas at the given opacity.
func (c *ImageCanvas) DrawImage(img image.Image, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity >= 1 {
		draw.Draw(c.Img, img.Bounds(), img, image.Point{}, draw.Over)
		return
	}
	a := uint8(opacity*255 + 0.5)
	mask := image.NewUniform(color.Alpha{A: a})
	draw.DrawMask(c.Img, img.Bounds(), img, image.Point{}, mask, image.Point{}, draw.Over)
}

// blendRow composites one scanline of coverage onto dst using
// premultiplied source-over blending. The coverage slice starts at
// column xMin of row y.
func blendRow(dst *image.RGBA, y, xMin int, coverage []float32, col color.NRGBA) {
	bounds := dst.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}

	sr := uint32(col.R)
	sg := uint32(col.G)
	sb := uint32(col.B)
	sa := uint32(col.A)

	for i, cov := range coverage {
		x := xMin + i
		if x < bounds.Min.X || x >= bounds.Max.X || cov <= 0 {
			continue
		}
		if cov > 1 {
			cov = 1
		}

		// Source scaled by coverage, premultiplied.
		a := uint32(float32(sa)*cov + 0.5)
		r := sr * a / 255
		g := sg * a / 255
		b := sb * a / 255

		off := dst.PixOffset(x, y)
		pix := dst.Pix[off : off+4 : off+4]

		inv := 255 - a
		pix[0] = uint8(r + uint32(pix[0])*inv/255)
		pix[1] = uint8(g + uint32(pix[1])*inv/255)
		pix[2] = uint8(b + uint32(pix[2])*inv/255)
		pix[3] = uint8(a + uint32(pix[3])*inv/255)
	}
}
