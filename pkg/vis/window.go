package vis

import (
	"sort"

	"github.com/kdsutter/visstream/internal/wire"
)

// CreateWindow registers a new window. name must be non-empty and not
// already in use by another window of either kind (§4.2).
func (e *Engine) CreateWindow(name string, is3D bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return ErrNotInitialized
	}
	e.sweepExpiredLocked()

	if name == "" {
		return ErrEmptyName
	}
	if _, exists := e.nameToID[name]; exists {
		return ErrDuplicateName
	}

	id := newWindowID()
	e.windows[id] = Window{
		ID:            id,
		Name:          name,
		Is3D:          is3D,
		GridVisible:   true,
		AxesVisible:   true,
		LegendVisible: true,
	}
	e.nameToID[name] = id
	e.windowObjects[id] = objectSet{}
	e.windowOrder = append(e.windowOrder, id)

	e.sendLocked(wire.SceneUpdate{
		WindowID:   id,
		WindowName: name,
		Is3D:       is3D,
		Commands: []wire.Command{{
			Kind:       wire.CmdCreateWindow,
			WindowID:   id,
			WindowName: name,
		}},
	})
	return nil
}

// RenameWindow renames oldName to newName. Renaming a window to its
// current name is a no-op that returns nil (§8 boundary behavior).
func (e *Engine) RenameWindow(oldName, newName string, is3D bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return ErrNotInitialized
	}
	e.sweepExpiredLocked()

	id, ok := e.nameToID[oldName]
	if !ok {
		return ErrWindowNotFound
	}
	w := e.windows[id]
	if w.Is3D != is3D {
		return ErrKindMismatch
	}
	if newName == "" {
		return ErrEmptyName
	}
	if newName == oldName {
		return nil
	}
	if _, exists := e.nameToID[newName]; exists {
		return ErrDuplicateName
	}

	delete(e.nameToID, oldName)
	e.nameToID[newName] = id
	w.Name = newName
	e.windows[id] = w

	e.sendLocked(wire.SceneUpdate{
		WindowID:   id,
		WindowName: newName,
		Is3D:       is3D,
		Commands: []wire.Command{{
			Kind:  wire.CmdSetTitle,
			Title: newName,
		}},
	})
	return nil
}

// RemoveWindow clears every tracked object in name's window, then drops
// the window and emits a DeleteWindow command, all as one scene update
// (§3, §8 boundary behavior).
func (e *Engine) RemoveWindow(name string, is3D bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return ErrNotInitialized
	}
	e.sweepExpiredLocked()

	id, ok := e.nameToID[name]
	if !ok {
		return ErrWindowNotFound
	}
	w := e.windows[id]
	if w.Is3D != is3D {
		return ErrKindMismatch
	}

	cmds := make([]wire.Command, 0, len(e.windowObjects[id])+1)
	for objID := range e.windowObjects[id] {
		if _, ok := e.removeObjectEntryLocked(objID); ok {
			cmds = append(cmds, wire.Command{Kind: wire.CmdDeleteObject, ObjectID: objID})
		}
	}
	cmds = append(cmds, wire.Command{Kind: wire.CmdDeleteWindow, WindowID: id})

	delete(e.windows, id)
	delete(e.nameToID, name)
	delete(e.windowObjects, id)
	delete(e.dirty2D, id)
	delete(e.dirty3D, id)
	e.windowOrder = removeString(e.windowOrder, id)

	e.sendLocked(wire.SceneUpdate{
		WindowID:   id,
		WindowName: name,
		Is3D:       is3D,
		Commands:   cmds,
	})
	return nil
}

// SetGridVisible updates name's grid-visibility flag and emits
// SetGridVisible. Returns false on unknown name or kind mismatch.
func (e *Engine) SetGridVisible(name string, visible, is3D bool) bool {
	return e.setFlag(name, is3D, wire.CmdSetGridVisible, visible, func(w *Window, v bool) { w.GridVisible = v })
}

// SetAxesVisible updates name's axes-visibility flag and emits
// SetAxesVisible. Returns false on unknown name or kind mismatch.
func (e *Engine) SetAxesVisible(name string, visible, is3D bool) bool {
	return e.setFlag(name, is3D, wire.CmdSetAxesVisible, visible, func(w *Window, v bool) { w.AxesVisible = v })
}

// SetLegendVisible updates name's legend-visibility flag and emits
// SetLegendVisible. Returns false on unknown name or kind mismatch.
func (e *Engine) SetLegendVisible(name string, visible, is3D bool) bool {
	return e.setFlag(name, is3D, wire.CmdSetLegendVisible, visible, func(w *Window, v bool) { w.LegendVisible = v })
}

func (e *Engine) setFlag(name string, is3D bool, kind wire.CommandKind, visible bool, apply func(*Window, bool)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return false
	}
	e.sweepExpiredLocked()

	id, ok := e.nameToID[name]
	if !ok {
		return false
	}
	w := e.windows[id]
	if w.Is3D != is3D {
		return false
	}
	apply(&w, visible)
	e.windows[id] = w

	e.sendLocked(wire.SceneUpdate{
		WindowID:   id,
		WindowName: w.Name,
		Is3D:       is3D,
		Commands:   []wire.Command{{Kind: kind, Visible: visible}},
	})
	return true
}

// GetWindowNames returns the display names of every window of the given
// kind, sorted for deterministic output.
func (e *Engine) GetWindowNames(is3D bool) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var names []string
	for _, id := range e.windowOrder {
		if w, ok := e.windows[id]; ok && w.Is3D == is3D {
			names = append(names, w.Name)
		}
	}
	sort.Strings(names)
	return names
}

// GetWindowsNumber returns the total number of windows, across both
// kinds.
func (e *Engine) GetWindowsNumber() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.windows)
}

// ConnectedWindowIDs returns the window IDs visible to the currently
// connected peer, or nil if no peer is connected. Since the core is
// single-peer and always replays every window on open, this is simply
// every window ID while connected (SPEC_FULL.md supplemented feature 3).
func (e *Engine) ConnectedWindowIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.transport == nil {
		return nil
	}
	out := make([]string, len(e.windowOrder))
	copy(out, e.windowOrder)
	return out
}
