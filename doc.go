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

// Package ink captures freehand pointer input and renders it as smoothed,
// antialiased ink.
//
// The central type is [Pad], a transparent drawing surface meant to be
// overlaid on other content. Pointer events fed into a Pad are accumulated
// into a [Gesture] (an ordered list of [Stroke] values, one per
// press-to-release motion) while live ink feedback is drawn through a
// double-buffered rendering model: committed strokes live in a persistent
// raster buffer, the in-progress stroke is drawn as a separate smoothed
// path on top. A timed fade-out animation can erase the buffer gradually.
//
// All Pad methods must be called from a single goroutine. The [Loop] type
// provides a suitable serial executor; the fade animation is driven through
// the [Scheduler] interface so that tests can substitute a manual clock.
package ink
