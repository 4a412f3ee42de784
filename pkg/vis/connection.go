package vis

import (
	"log/slog"

	"github.com/kdsutter/visstream/internal/wire"
)

// Transport is the abstract "send one binary message to the connected
// peer" primitive the engine assumes (§1). internal/transport provides
// the concrete websocket-backed implementation; the frame format beyond
// the schema in internal/wire is out of this package's scope.
type Transport interface {
	// Send transmits one already-encoded scene-update payload.
	Send(payload []byte) error
	// Close closes the underlying connection.
	Close() error
}

// TryOnOpen attempts to attach t as the engine's single peer. It fails
// (returns false) if a peer is already connected — the engine rejects
// the newcomer and lets the existing connection continue, resolving
// Open Question 3 in favor of rejecting the newcomer rather than evicting
// the existing peer (see DESIGN.md). It also returns false before Run.
// On success, every window and
// tracked object is replayed to t in creation order (§4.4).
func (e *Engine) TryOnOpen(t Transport) bool {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return false
	}
	if e.transport != nil {
		e.mu.Unlock()
		return false
	}
	e.transport = t

	for _, windowID := range e.windowOrder {
		w, ok := e.windows[windowID]
		if !ok {
			continue
		}
		e.sendLocked(wire.SceneUpdate{
			WindowID:   windowID,
			WindowName: w.Name,
			Is3D:       w.Is3D,
			Commands: []wire.Command{{
				Kind:       wire.CmdCreateWindow,
				WindowID:   windowID,
				WindowName: w.Name,
			}},
		})
	}
	for _, objID := range e.objectOrder {
		ot, ok := e.objects[objID]
		if !ok {
			continue
		}
		b := ot.sourceRef.Value()
		if b == nil {
			continue
		}
		w := e.windows[ot.windowID]
		e.sendLocked(wire.SceneUpdate{
			WindowID:   ot.windowID,
			WindowName: w.Name,
			Is3D:       ot.is3D,
			Commands: []wire.Command{{
				Kind:     wire.CmdAddObject,
				ObjectID: objID,
				Material: ot.material,
				Geometry: b.snapshot(),
			}},
		})
	}

	wake := e.onWake
	e.mu.Unlock()
	if wake != nil {
		wake()
	}
	return true
}

// OnClose detaches t if it is still the current peer. Sends after this
// point are silently dropped until the next TryOnOpen (§4.4, §7
// TransportDropped).
func (e *Engine) OnClose(t Transport) {
	e.mu.Lock()
	if e.transport == t {
		e.transport = nil
	}
	wake := e.onWake
	e.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// sendLocked encodes and transmits one scene update. Must be called
// while e.mu is held. A Malformed encoding error is logged and the
// command dropped; a nil transport (no peer) silently drops the send
// (§7). A write failure is treated as an implicit disconnect, matching
// the original source's on_close behavior of simply dropping the send
// side on the next failure.
func (e *Engine) sendLocked(u wire.SceneUpdate) {
	if len(u.Commands) == 0 || e.transport == nil {
		return
	}
	payload, err := wire.Encode(u)
	if err != nil {
		warnMalformed(err)
		return
	}
	if err := e.transport.Send(payload); err != nil {
		slog.Error("dropping peer after failed send", "err", err)
		e.transport = nil
	}
}
