package vis

import (
	"log/slog"
	"weak"

	"github.com/kdsutter/visstream/internal/wire"
	"github.com/kdsutter/visstream/pkg/geometry"
	"github.com/kdsutter/visstream/pkg/material"
)

// Add registers src with the window named windowName and returns its
// freshly assigned object_id. The initial geometry snapshot is captured
// into the AddObject command at this point (§4.1). A nil src is ignored.
func (e *Engine) Add(src Source, windowName string, mat material.Material, is3D bool) (string, error) {
	if src == nil {
		return "", nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return "", ErrNotInitialized
	}
	e.sweepExpiredLocked()
	return e.addLocked(src, windowName, mat, is3D)
}

// AddValue clones v into a fresh Source owned by the engine and adds it
// (§4.5's "by-value overload"). is3D is derived from v itself.
func (e *Engine) AddValue(v geometry.Value, windowName string, mat material.Material) (string, error) {
	if v == nil {
		return "", nil
	}
	src := wrapValue(geometry.Clone(v))
	if src == nil {
		return "", nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return "", ErrNotInitialized
	}
	e.sweepExpiredLocked()
	return e.addLocked(src, windowName, mat, v.Is3D())
}

func (e *Engine) addLocked(src Source, windowName string, mat material.Material, is3D bool) (string, error) {
	windowID, ok := e.nameToID[windowName]
	if !ok {
		return "", ErrWindowNotFound
	}
	w := e.windows[windowID]
	if w.Is3D != is3D {
		return "", ErrKindMismatch
	}

	id := e.nextObjectID()
	snap := src.Snapshot()
	t := &trackedObject{
		id:       id,
		windowID: windowID,
		is3D:     is3D,
		material: mat,
	}
	t.sourceRef = weak.Make(src.baseRef())
	t.recordEvent(wire.CmdAddObject)

	e.objects[id] = t
	if e.windowObjects[windowID] == nil {
		e.windowObjects[windowID] = objectSet{}
	}
	e.windowObjects[windowID][id] = struct{}{}
	// A source already tracked elsewhere has its back-reference
	// overwritten here; the prior trackedObject entry (if any) becomes
	// orphaned under the old object_id until its window is removed or
	// a clear_static sweeps it — see DESIGN.md Open Question 2.
	e.sourceToID[t.sourceRef] = id
	e.objectOrder = append(e.objectOrder, id)

	src.baseRef().attach(e)

	e.sendLocked(wire.SceneUpdate{
		WindowID:   windowID,
		WindowName: w.Name,
		Is3D:       is3D,
		Commands: []wire.Command{{
			Kind:     wire.CmdAddObject,
			ObjectID: id,
			Material: mat,
			Geometry: snap,
		}},
	})
	return id, nil
}

// notifySource implements Notifier. It is called synchronously from a
// host thread inside Source.set, never from the network task.
func (e *Engine) notifySource(b *base) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.sourceToID[weak.Make(b)]
	if !ok {
		// Object already removed; benign (§4.1 mark_dirty bullet).
		return
	}
	t, ok := e.objects[id]
	if !ok {
		return
	}
	set := e.dirtySetLocked(t.windowID, t.is3D)
	set[id] = struct{}{}

	if e.pol.enabled && e.pol.threshold > 0 && len(set) >= e.pol.threshold {
		e.flushWindowLocked(t.windowID, t.is3D)
	}
}

func (e *Engine) dirtySetLocked(windowID string, is3D bool) objectSet {
	m := e.dirty2D
	if is3D {
		m = e.dirty3D
	}
	s := m[windowID]
	if s == nil {
		s = objectSet{}
		m[windowID] = s
	}
	return s
}

// sweepExpiredLocked removes every tracked object whose weak source
// reference has expired, emitting DeleteObject for each (§4.1).
func (e *Engine) sweepExpiredLocked() {
	for id, t := range e.objects {
		if t.sourceRef.Value() == nil {
			e.removeObjectLocked(id)
		}
	}
}

// removeObjectLocked removes a tracked object from every index and
// sends its DeleteObject command as a standalone scene update.
func (e *Engine) removeObjectLocked(id string) {
	t, ok := e.removeObjectEntryLocked(id)
	if !ok {
		return
	}
	w := e.windows[t.windowID]
	e.sendLocked(wire.SceneUpdate{
		WindowID:   t.windowID,
		WindowName: w.Name,
		Is3D:       t.is3D,
		Commands: []wire.Command{{
			Kind:     wire.CmdDeleteObject,
			ObjectID: id,
		}},
	})
}

// removeObjectEntryLocked drops id from every registry index and clears
// the source's engine back-reference if it is still live, without
// sending anything. Callers that remove several objects in one call use
// this to batch every DeleteObject into a single scene update.
func (e *Engine) removeObjectEntryLocked(id string) (*trackedObject, bool) {
	t, ok := e.objects[id]
	if !ok {
		return nil, false
	}
	delete(e.objects, id)
	delete(e.windowObjects[t.windowID], id)
	delete(e.dirty2D[t.windowID], id)
	delete(e.dirty3D[t.windowID], id)
	if cur, ok := e.sourceToID[t.sourceRef]; ok && cur == id {
		delete(e.sourceToID, t.sourceRef)
	}
	if src := t.sourceRef.Value(); src != nil {
		src.detach(e)
	}
	e.objectOrder = removeString(e.objectOrder, id)
	t.recordEvent(wire.CmdDeleteObject)
	return t, true
}

func removeString(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// ClearDynamic removes tracked objects in windowName whose weak source
// reference has expired. Because sweepExpiredLocked already runs at the
// top of every mutating call, this typically finds nothing left to
// remove — see DESIGN.md's note on Open Question 1.
func (e *Engine) ClearDynamic(windowName string, is3D bool) error {
	return e.clearWhere(windowName, is3D, func(t *trackedObject) bool {
		return t.sourceRef.Value() == nil
	})
}

// ClearStatic removes tracked objects in windowName whose source is
// still live.
func (e *Engine) ClearStatic(windowName string, is3D bool) error {
	return e.clearWhere(windowName, is3D, func(t *trackedObject) bool {
		return t.sourceRef.Value() != nil
	})
}

// Clear removes every tracked object in windowName.
func (e *Engine) Clear(windowName string, is3D bool) error {
	return e.clearWhere(windowName, is3D, func(*trackedObject) bool { return true })
}

func (e *Engine) clearWhere(windowName string, is3D bool, match func(*trackedObject) bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return ErrNotInitialized
	}
	e.sweepExpiredLocked()

	windowID, ok := e.nameToID[windowName]
	if !ok {
		return ErrWindowNotFound
	}
	w := e.windows[windowID]
	if w.Is3D != is3D {
		return ErrKindMismatch
	}

	var toRemove []string
	for id := range e.windowObjects[windowID] {
		if t, ok := e.objects[id]; ok && match(t) {
			toRemove = append(toRemove, id)
		}
	}
	if len(toRemove) == 0 {
		return nil
	}
	cmds := make([]wire.Command, 0, len(toRemove))
	for _, id := range toRemove {
		if _, ok := e.removeObjectEntryLocked(id); ok {
			cmds = append(cmds, wire.Command{Kind: wire.CmdDeleteObject, ObjectID: id})
		}
	}
	e.sendLocked(wire.SceneUpdate{
		WindowID:   windowID,
		WindowName: w.Name,
		Is3D:       is3D,
		Commands:   cmds,
	})
	return nil
}

// GetObservablesNumber returns the count of currently tracked objects,
// after sweeping expired ones (§8 testable property 1).
func (e *Engine) GetObservablesNumber() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sweepExpiredLocked()
	return len(e.objects)
}

func warnMalformed(err error) {
	slog.Error("dropping malformed scene update", "err", err)
}
