package vis

import (
	"time"

	"github.com/kdsutter/visstream/internal/wire"
)

// SetAutoUpdatePolicy atomically updates the threshold and interval
// policies (§4.3). A threshold or interval of 0 with enabled=true
// disables that axis of the policy (§8 boundary behavior); enabled=false
// disables both regardless of the other fields.
func (e *Engine) SetAutoUpdatePolicy(enabled bool, threshold, intervalMs int) {
	e.mu.Lock()
	e.pol = policy{enabled: enabled, threshold: threshold, intervalMs: intervalMs}
	wake := e.onWake
	e.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// DrawNow flushes exactly one window's dirty set, regardless of policy
// (§4.3 manual flush).
func (e *Engine) DrawNow(windowName string, is3D bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return ErrNotInitialized
	}
	e.sweepExpiredLocked()

	id, ok := e.nameToID[windowName]
	if !ok {
		return ErrWindowNotFound
	}
	if e.windows[id].Is3D != is3D {
		return ErrKindMismatch
	}
	e.flushWindowLocked(id, is3D)
	return nil
}

// flushWindowLocked snapshots and clears windowID's dirty set, then
// emits one UpdateObjectGeometry per still-live object as a single scene
// update (§4.3 "Flushing a dirty set"). Two consecutive flushes with no
// intervening mutation produce at most one scene update — the second
// finds the dirty set empty and this is a no-op (§8 testable property
// 5).
func (e *Engine) flushWindowLocked(windowID string, is3D bool) {
	m := e.dirty2D
	if is3D {
		m = e.dirty3D
	}
	set := m[windowID]
	if len(set) == 0 {
		return
	}
	m[windowID] = objectSet{}

	cmds := make([]wire.Command, 0, len(set))
	for id := range set {
		t, ok := e.objects[id]
		if !ok {
			continue
		}
		b := t.sourceRef.Value()
		if b == nil {
			// Expired; sweep_expired will remove it on the next call.
			continue
		}
		cmds = append(cmds, wire.Command{
			Kind:     wire.CmdUpdateObjectGeometry,
			ObjectID: id,
			Geometry: b.snapshot(),
		})
		t.recordEvent(wire.CmdUpdateObjectGeometry)
	}
	if len(cmds) == 0 {
		return
	}

	w := e.windows[windowID]
	e.sendLocked(wire.SceneUpdate{
		WindowID:   windowID,
		WindowName: w.Name,
		Is3D:       is3D,
		Commands:   cmds,
	})
}

// flushAllNonEmptyLocked flushes every window (2D and 3D) with a
// non-empty dirty set. Called by the interval timer (§4.3).
func (e *Engine) flushAllNonEmptyLocked() {
	for windowID, set := range e.dirty2D {
		if len(set) > 0 {
			e.flushWindowLocked(windowID, false)
		}
	}
	for windowID, set := range e.dirty3D {
		if len(set) > 0 {
			e.flushWindowLocked(windowID, true)
		}
	}
}

// TimerFire is invoked by the network task's interval timer. It is a
// no-op if no peer is connected or the interval policy is currently
// disabled (the timer loop should not be running in that case, but the
// check is kept defensively since policy changes and timer
// reconfiguration are asynchronous with respect to each other).
func (e *Engine) TimerFire() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.transport == nil || !e.pol.enabled || e.pol.intervalMs <= 0 {
		return
	}
	e.flushAllNonEmptyLocked()
}

// DesiredTimerState reports whether the interval timer should currently
// be running, and at what period. The network task (internal/transport.Hub)
// polls this after every wake to decide whether to (re)arm or cancel its
// ticker — see SPEC_FULL.md's note on posting timer mutations to the
// network task to avoid cross-thread timer races (§4.3).
func (e *Engine) DesiredTimerState() (active bool, interval time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	active = e.started && e.transport != nil && e.pol.enabled && e.pol.intervalMs > 0
	if active {
		interval = time.Duration(e.pol.intervalMs) * time.Millisecond
	}
	return active, interval
}
