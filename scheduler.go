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
	"sync"
	"sync/atomic"
	"time"
)

// A Scheduler runs callbacks after a delay, on the same logical thread
// as the rest of the pad. Delayed callbacks must never run concurrently
// with pointer event handling.
type Scheduler interface {
	// Schedule arranges for fn to be called after the given delay and
	// returns a function which cancels the call. Cancelling after fn
	// has run, or more than once, has no effect.
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// A Loop is a single-goroutine run loop. Functions posted to the loop
// run in order on the loop goroutine, which makes it safe to drive a
// Pad from several goroutines. It implements Scheduler by posting the
// delayed callback to the loop.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool

	done chan struct{}
}

// NewLoop starts a new run loop.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		queue := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range queue {
			fn()
		}
		if closed {
			return
		}
		if len(queue) == 0 {
			<-l.wake
		}
	}
}

// Post submits fn to run on the loop goroutine and returns immediately.
// Posting to a closed loop is a no-op.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(fn func()) {
	ch := make(chan struct{})
	l.Post(func() {
		defer close(ch)
		fn()
	})
	<-ch
}

// Schedule implements the Scheduler interface. The callback runs on the
// loop goroutine.
func (l *Loop) Schedule(delay time.Duration, fn func()) (cancel func()) {
	var cancelled atomic.Bool
	timer := time.AfterFunc(delay, func() {
		l.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

// Close shuts the loop down after running all functions already posted.
// It does not wait for pending Schedule timers.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.done
}
