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

// Kind describes the action of a pointer event.
type Kind uint8

const (
	// Press is reported when the pointer touches the surface.
	Press Kind = iota
	// Move is reported while the pointer moves with contact held.
	Move
	// Release is reported when contact ends.
	Release
)

// Event is a single pointer sample delivered to a [Pad].
//
// Coordinates are in the pad's device space (pixels, origin top left).
// Time is a monotonic event timestamp in milliseconds; its base is
// undefined, only differences are meaningful.
type Event struct {
	Kind Kind
	X, Y float64
	Time int64
}

func (k Kind) String() string {
	switch k {
	case Press:
		return "Press"
	case Move:
		return "Move"
	case Release:
		return "Release"
	default:
		return "Unknown"
	}
}
