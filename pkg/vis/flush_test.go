package vis

import (
	"testing"
	"time"

	"github.com/kdsutter/visstream/internal/wire"
	"github.com/kdsutter/visstream/pkg/geometry"
	"github.com/kdsutter/visstream/pkg/material"
)

func TestDrawNowFlushesOnlyDirtyObjects(t *testing.T) {
	e := NewEngine()
	e.Run()
	tr := &fakeTransport{}
	e.TryOnOpen(tr)
	_ = e.CreateWindow("front", false)

	src := NewPoint(geometry.Vec2{})
	if _, err := e.Add(src, "front", material.Default(), false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := tr.count()

	// No mutation since Add: DrawNow should send nothing (dirty set empty).
	if err := e.DrawNow("front", false); err != nil {
		t.Fatalf("DrawNow: %v", err)
	}
	if tr.count() != before {
		t.Fatalf("expected no scene update for an unchanged object, got %d new sends", tr.count()-before)
	}

	src.SetPosition(geometry.Vec2{X: 3, Y: 4})
	if err := e.DrawNow("front", false); err != nil {
		t.Fatalf("DrawNow: %v", err)
	}
	if tr.count() != before+1 {
		t.Fatalf("expected exactly one scene update after one mutation, got %d", tr.count()-before)
	}

	last := tr.last()
	if len(last.Commands) != 1 || last.Commands[0].Kind != wire.CmdUpdateObjectGeometry {
		t.Fatalf("expected a single UpdateObjectGeometry command, got %+v", last.Commands)
	}

	// A second flush with no intervening mutation is a no-op.
	if err := e.DrawNow("front", false); err != nil {
		t.Fatalf("DrawNow: %v", err)
	}
	if tr.count() != before+1 {
		t.Fatalf("expected the second flush to send nothing, got %d new sends", tr.count()-before-1)
	}
}

func TestThresholdTriggersImmediateFlush(t *testing.T) {
	e := NewEngine()
	e.Run()
	e.SetAutoUpdatePolicy(true, 2, 0)
	tr := &fakeTransport{}
	e.TryOnOpen(tr)
	_ = e.CreateWindow("front", false)

	a := NewPoint(geometry.Vec2{})
	b := NewPoint(geometry.Vec2{})
	if _, err := e.Add(a, "front", material.Default(), false); err != nil {
		t.Fatalf("Add a: %v", err)
	}
	if _, err := e.Add(b, "front", material.Default(), false); err != nil {
		t.Fatalf("Add b: %v", err)
	}
	before := tr.count()

	a.SetPosition(geometry.Vec2{X: 1})
	if tr.count() != before {
		t.Fatalf("expected no flush below threshold, got %d new sends", tr.count()-before)
	}
	b.SetPosition(geometry.Vec2{X: 2})
	if tr.count() != before+1 {
		t.Fatalf("expected exactly one flush once threshold reached, got %d new sends", tr.count()-before)
	}
}

func TestDesiredTimerState(t *testing.T) {
	e := NewEngine()
	active, _ := e.DesiredTimerState()
	if active {
		t.Fatal("expected inactive before Run")
	}

	e.Run()
	tr := &fakeTransport{}
	e.TryOnOpen(tr)
	e.SetAutoUpdatePolicy(true, 0, 100)

	active, interval := e.DesiredTimerState()
	if !active || interval != 100*time.Millisecond {
		t.Fatalf("expected active with a 100ms interval, got active=%v interval=%v", active, interval)
	}

	e.SetAutoUpdatePolicy(false, 0, 100)
	if active, _ = e.DesiredTimerState(); active {
		t.Fatal("expected inactive once policy disabled")
	}
}

func TestTimerFireFlushesAllDirtyWindows(t *testing.T) {
	e := NewEngine()
	e.Run()
	e.SetAutoUpdatePolicy(true, 0, 50)
	tr := &fakeTransport{}
	e.TryOnOpen(tr)
	_ = e.CreateWindow("front", false)
	_ = e.CreateWindow("scene", true)

	a := NewPoint(geometry.Vec2{})
	b := NewBall(geometry.Vec3{}, 1)
	_, _ = e.Add(a, "front", material.Default(), false)
	_, _ = e.Add(b, "scene", material.Default(), true)
	before := tr.count()

	a.SetPosition(geometry.Vec2{X: 1})
	b.SetRadius(2)

	e.TimerFire()
	if tr.count() != before+2 {
		t.Fatalf("expected both windows to flush, got %d new sends", tr.count()-before)
	}
}
