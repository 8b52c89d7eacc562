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

	"seehuhn.de/go/pdf/graphics"
)

// Style describes how strokes are painted. Styles are immutable value
// descriptors; render operations receive the style to use instead of
// mutating shared paint state.
type Style struct {
	// Color is the ink color, non-premultiplied.
	Color color.NRGBA

	// Width is the stroke thickness in pixels. Must be positive.
	Width float64

	// Cap is the style for stroke endpoints. A zero-length stroke
	// renders as a dot with LineCapRound and as nothing with LineCapButt.
	Cap graphics.LineCapStyle

	// Join is the style for stroke corners.
	Join graphics.LineJoinStyle

	// Flatness is the curve flattening tolerance in pixels.
	// Zero means the default.
	Flatness float64
}

// DefaultColor is the ink color used by [DefaultStyle].
var DefaultColor = color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}

// DefaultStyle returns the standard ink style: opaque yellow, 12 pixels
// wide, with round caps and joins.
func DefaultStyle() Style {
	return Style{
		Color: DefaultColor,
		Width: 12,
		Cap:   graphics.LineCapRound,
		Join:  graphics.LineJoinRound,
	}
}

// WithColor returns a copy of the style with the ink color replaced.
func (s Style) WithColor(c color.NRGBA) Style {
	s.Color = c
	return s
}

// flatness returns the effective flattening tolerance.
func (s Style) flatness() float64 {
	if s.Flatness > 0 {
		return s.Flatness
	}
	return defaultFlatness
}
