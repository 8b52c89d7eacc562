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

// Inkpad is a small scribble pad. Draw with the mouse or a touch
// screen, press C to let the ink fade away, Escape to quit.
package main

import (
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"seehuhn.de/go/ink"
)

var background = color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xff}

func main() {
	go func() {
		w := app.NewWindow(
			app.Title("inkpad"),
			app.Size(unit.Dp(600), unit.Dp(400)),
		)
		if err := run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run(w *app.Window) error {
	loop := ink.NewLoop()
	defer loop.Close()

	pad := ink.NewPad(loop)
	pad.Redraw = w.Invalidate

	var (
		ops    op.Ops
		canvas *ink.ImageCanvas
	)
	tag := new(bool) // identifies our pointer input area

	for e := range w.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err

		case key.Event:
			if e.State != key.Press {
				break
			}
			switch e.Name {
			case "C":
				loop.Do(func() { pad.Clear(true) })
			case key.NameEscape:
				w.Close()
			}

		case system.FrameEvent:
			ops.Reset()

			for _, ev := range e.Queue.Events(tag) {
				pe, ok := ev.(pointer.Event)
				if !ok {
					continue
				}
				iev, ok := toInkEvent(pe)
				if !ok {
					continue
				}
				loop.Do(func() { pad.HandlePointer(iev) })
			}

			if canvas == nil ||
				canvas.Img.Bounds().Dx() != e.Size.X ||
				canvas.Img.Bounds().Dy() != e.Size.Y {
				canvas = ink.NewImageCanvas(e.Size.X, e.Size.Y)
			}
			loop.Do(func() {
				pad.Resize(e.Size.X, e.Size.Y)
				canvas.Fill(background)
				pad.Draw(canvas)
			})

			paint.NewImageOp(canvas.Img).Add(&ops)
			paint.PaintOp{}.Add(&ops)

			area := clip.Rect(image.Rectangle{Max: e.Size}).Push(&ops)
			pointer.InputOp{
				Tag:   tag,
				Types: pointer.Press | pointer.Drag | pointer.Release,
			}.Add(&ops)
			area.Pop()

			e.Frame(&ops)
		}
	}
	return nil
}

func toInkEvent(pe pointer.Event) (ink.Event, bool) {
	var kind ink.Kind
	switch pe.Type {
	case pointer.Press:
		kind = ink.Press
	case pointer.Drag:
		kind = ink.Move
	case pointer.Release:
		kind = ink.Release
	default:
		return ink.Event{}, false
	}
	return ink.Event{
		Kind: kind,
		X:    float64(pe.Position.X),
		Y:    float64(pe.Position.Y),
		Time: pe.Time.Milliseconds(),
	}, true
}
