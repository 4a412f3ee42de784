// Package transport wires an Engine to the outside world: a websocket
// peer connection and the network task that owns the interval-flush
// timer. The select-loop shape here is grounded on a classic hub
// register/unregister/broadcast pattern, repurposed for a single peer
// and a policy-driven ticker instead of a client set and a broadcast
// channel.
package transport

import (
	"log/slog"
	"time"

	"github.com/kdsutter/visstream/pkg/vis"
)

// Hub owns the interval timer that periodically flushes an Engine's
// dirty windows (§4.3). Timer state is only ever touched from the Hub's
// own goroutine, so a policy change or a connect/disconnect from any
// other goroutine is posted as a wake signal rather than mutating a
// ticker directly, avoiding the cross-thread timer races the original
// source's single-threaded ASIO strand rules out for free.
type Hub struct {
	engine *vis.Engine
	wake   chan struct{}
	done   chan struct{}
}

// NewHub constructs a Hub bound to engine and installs itself as the
// engine's waker. Run must be started in its own goroutine before the
// engine is started.
func NewHub(engine *vis.Engine) *Hub {
	h := &Hub{
		engine: engine,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	engine.SetWaker(h.Wake)
	return h
}

// Wake schedules a reevaluation of the desired timer state. It never
// blocks: a pending, undelivered wake already implies the loop will
// reevaluate soon, so a full channel is left alone.
func (h *Hub) Wake() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Run drives the timer loop until Stop is called. It must run in its
// own goroutine.
func (h *Hub) Run() {
	var timer *time.Timer
	var timerC <-chan time.Time
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}
	defer stopTimer()

	rearm := func() {
		active, interval := h.engine.DesiredTimerState()
		stopTimer()
		if !active {
			return
		}
		timer = time.NewTimer(interval)
		timerC = timer.C
	}
	rearm()

	for {
		select {
		case <-h.wake:
			rearm()
		case <-timerC:
			h.engine.TimerFire()
			rearm()
		case <-h.done:
			slog.Info("network task stopped")
			return
		}
	}
}

// Stop halts Run's loop. Safe to call once.
func (h *Hub) Stop() {
	close(h.done)
}
