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

// A Listener observes the progress of gesture capture on a Pad. All
// methods are called synchronously while the pad processes a pointer
// event; the Event argument is the pointer event which triggered the
// notification.
type Listener interface {
	// GestureStart is called when a pointer press begins a new stroke.
	GestureStart(pad *Pad, ev Event)

	// GestureProgress is called for every pointer move while a stroke
	// is being captured.
	GestureProgress(pad *Pad, ev Event)

	// GestureFinish is called when a pointer release commits the
	// stroke to the current gesture.
	GestureFinish(pad *Pad, ev Event)
}

// AddListener registers l to be notified of gesture events. The same
// listener may be registered more than once and is then notified once
// per registration.
func (p *Pad) AddListener(l Listener) {
	// Copy on write, so that dispatch loops iterating over an earlier
	// snapshot are not affected.
	listeners := make([]Listener, len(p.listeners), len(p.listeners)+1)
	copy(listeners, p.listeners)
	p.listeners = append(listeners, l)
}

// RemoveListener removes the first registration of l, if any.
func (p *Pad) RemoveListener(l Listener) {
	for i, reg := range p.listeners {
		if reg == l {
			listeners := make([]Listener, 0, len(p.listeners)-1)
			listeners = append(listeners, p.listeners[:i]...)
			listeners = append(listeners, p.listeners[i+1:]...)
			p.listeners = listeners
			return
		}
	}
}

func (p *Pad) notifyStart(ev Event) {
	for _, l := range p.listeners {
		l.GestureStart(p, ev)
	}
}

func (p *Pad) notifyProgress(ev Event) {
	for _, l := range p.listeners {
		l.GestureProgress(p, ev)
	}
}

func (p *Pad) notifyFinish(ev Event) {
	for _, l := range p.listeners {
		l.GestureFinish(p, ev)
	}
}
