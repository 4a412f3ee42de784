package vis

import (
	"strconv"
	"sync"
	"weak"

	"github.com/google/uuid"
	"github.com/kdsutter/visstream/internal/wire"
	"github.com/kdsutter/visstream/pkg/material"
)

// Window is the engine's record for a named display surface. Its kind
// (2D vs 3D) is fixed at creation (§3).
type Window struct {
	ID            string
	Name          string
	Is3D          bool
	GridVisible   bool
	AxesVisible   bool
	LegendVisible bool
}

// objectSet is a set of object IDs, used for both window membership and
// per-window dirty tracking.
type objectSet map[string]struct{}

// trackedObject is the engine's registration record for a Source (§3's
// TrackedObject). sourceRef is a weak reference: the engine never keeps
// the Source alive on the host's behalf.
type trackedObject struct {
	id        string
	sourceRef weak.Pointer[base]
	windowID  string
	is3D      bool
	material  material.Material
	history   []wire.CommandKind // bounded causality ring, see debugviz.go
}

const causalityRingLimit = 12

func (t *trackedObject) recordEvent(kind wire.CommandKind) {
	t.history = append(t.history, kind)
	if len(t.history) > causalityRingLimit {
		t.history = t.history[len(t.history)-causalityRingLimit:]
	}
}

// policy holds the flush engine's composed auto-update configuration
// (§4.3).
type policy struct {
	enabled    bool
	threshold  int
	intervalMs int
}

// Engine is the process-wide visualization streaming engine. Unlike the
// singleton in the original source, an Engine is an explicit value the
// host constructs and passes around.
//
// A single coarse mutex serializes every mutation to the registry
// indices, the dirty sets, the window table, and the peer handle, and is
// held across the full body of every public method (§5).
type Engine struct {
	mu sync.Mutex

	started bool

	// registry indices (§3)
	objects       map[string]*trackedObject
	sourceToID    map[weak.Pointer[base]]string
	windowObjects map[string]objectSet
	dirty2D       map[string]objectSet
	dirty3D       map[string]objectSet
	windows       map[string]Window
	nameToID      map[string]string
	windowOrder   []string
	objectOrder   []string
	nextObjectSeq uint64

	// flush engine state (§4.3)
	pol policy

	// connection manager state (§4.4)
	transport Transport

	// network-task wake hook, installed by the caller that owns the
	// timer loop (internal/transport.Hub). Invoked by Run, Stop,
	// SetAutoUpdatePolicy, TryOnOpen and OnClose. A transport dropped by
	// sendLocked after a failed send does not invoke it; the timer keeps
	// firing and TimerFire does nothing until the next wake.
	onWake func()
}

// NewEngine constructs an unstarted Engine. Until Run is called, the
// window and object operations return ErrNotInitialized, the visibility
// setters and TryOnOpen return false, and SetWaker, SetAutoUpdatePolicy
// and the read-only queries work as usual.
func NewEngine() *Engine {
	return &Engine{
		objects:       make(map[string]*trackedObject),
		sourceToID:    make(map[weak.Pointer[base]]string),
		windowObjects: make(map[string]objectSet),
		dirty2D:       make(map[string]objectSet),
		dirty3D:       make(map[string]objectSet),
		windows:       make(map[string]Window),
		nameToID:      make(map[string]string),
	}
}

// Run marks the engine as initialized and wakes the network task so that
// a policy configured before Run takes effect without a further
// SetAutoUpdatePolicy call (see SPEC_FULL.md's "Auto-flush scheduling on
// run()"). The interval timer itself is armed only while a peer is
// attached (DesiredTimerState), so with no peer yet Run does not start it.
func (e *Engine) Run() {
	e.mu.Lock()
	e.started = true
	wake := e.onWake
	e.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Stop marks the engine as no longer accepting operations and drops any
// connected peer, calling Close on its transport. It does not touch the
// registry. Stop is idempotent. The interval timer is cancelled by the
// network task (internal/transport.Hub) when the wake issued here makes
// it see DesiredTimerState report inactive.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.started = false
	t := e.transport
	e.transport = nil
	wake := e.onWake
	e.mu.Unlock()
	if t != nil {
		_ = t.Close()
	}
	if wake != nil {
		wake()
	}
}

// SetWaker installs the callback the engine invokes (without holding its
// lock) whenever policy or connection state changes in a way that might
// require the network task's timer to be rearmed. See internal/transport.Hub.
func (e *Engine) SetWaker(f func()) {
	e.mu.Lock()
	e.onWake = f
	e.mu.Unlock()
}

// IsConnected reports whether a peer is currently attached.
func (e *Engine) IsConnected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transport != nil
}

// nextObjectID assigns a fresh, monotonically increasing object_id,
// unique for the engine's lifetime (§3).
func (e *Engine) nextObjectID() string {
	e.nextObjectSeq++
	// object_id only needs to be unique and monotone, not random; a
	// plain decimal counter keeps wire payloads small and replay logs
	// readable, matching the original source's "obj_" + counter scheme.
	return "obj_" + strconv.FormatUint(e.nextObjectSeq, 10)
}

// newWindowID generates a stable opaque version-4 UUID for a new window
// (§3).
func newWindowID() string {
	return uuid.NewString()
}
