package vis

import (
	"runtime"
	"testing"

	"github.com/kdsutter/visstream/pkg/geometry"
	"github.com/kdsutter/visstream/pkg/material"
)

func TestAddUnknownWindow(t *testing.T) {
	e := NewEngine()
	e.Run()
	src := NewPoint(geometry.Vec2{X: 1, Y: 1})
	if _, err := e.Add(src, "missing", material.Default(), false); err != ErrWindowNotFound {
		t.Fatalf("expected ErrWindowNotFound, got %v", err)
	}
}

func TestAddKindMismatch(t *testing.T) {
	e := NewEngine()
	e.Run()
	_ = e.CreateWindow("front", false)
	src := NewBall(geometry.Vec3{}, 1)
	if _, err := e.Add(src, "front", material.Default(), true); err != ErrKindMismatch {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
}

func TestSweepExpiredRemovesGCedSource(t *testing.T) {
	e := NewEngine()
	e.Run()
	_ = e.CreateWindow("front", false)

	addOne := func() {
		src := NewPoint(geometry.Vec2{X: 1, Y: 1})
		if _, err := e.Add(src, "front", material.Default(), false); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	addOne()

	if n := e.GetObservablesNumber(); n != 1 {
		t.Fatalf("expected 1 tracked object, got %d", n)
	}

	runtime.GC()
	runtime.GC()

	if n := e.GetObservablesNumber(); n != 0 {
		t.Fatalf("expected the GCed source's object to be swept, got %d remaining", n)
	}
}

func TestDoubleAddOrphansPriorEntry(t *testing.T) {
	e := NewEngine()
	e.Run()
	_ = e.CreateWindow("front", false)

	src := NewPoint(geometry.Vec2{X: 1, Y: 1})
	firstID, err := e.Add(src, "front", material.Default(), false)
	if err != nil {
		t.Fatalf("first Add: %v", err)
	}
	secondID, err := e.Add(src, "front", material.Default(), false)
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if firstID == secondID {
		t.Fatal("expected a fresh object_id on re-add")
	}

	// Both entries are still present (the first is orphaned, not removed)
	// until something sweeps or clears it; sourceToID now points only at
	// the second.
	if n := e.GetObservablesNumber(); n != 2 {
		t.Fatalf("expected both the fresh and orphaned entries to still be tracked, got %d", n)
	}

	src.SetPosition(geometry.Vec2{X: 5, Y: 5})
	// The live back-reference only reaches the second registration; the
	// first is orphaned and never receives further updates.
}

func TestClearStaticAndClearDynamic(t *testing.T) {
	e := NewEngine()
	e.Run()
	_ = e.CreateWindow("front", false)

	src := NewPoint(geometry.Vec2{})
	if _, err := e.Add(src, "front", material.Default(), false); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// ClearDynamic (expired only) should be a no-op while the source is
	// still live.
	if err := e.ClearDynamic("front", false); err != nil {
		t.Fatalf("ClearDynamic: %v", err)
	}
	if n := e.GetObservablesNumber(); n != 1 {
		t.Fatalf("expected the live object to survive ClearDynamic, got %d", n)
	}

	if err := e.ClearStatic("front", false); err != nil {
		t.Fatalf("ClearStatic: %v", err)
	}
	if n := e.GetObservablesNumber(); n != 0 {
		t.Fatalf("expected ClearStatic to remove the live object, got %d", n)
	}
	if src.baseRef().engine != nil {
		t.Fatal("expected ClearStatic to detach the engine back-reference from the surviving source")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	e := NewEngine()
	e.Run()
	tr := &fakeTransport{}
	if !e.TryOnOpen(tr) {
		t.Fatal("TryOnOpen should succeed")
	}
	_ = e.CreateWindow("front", false)
	src1 := NewPoint(geometry.Vec2{})
	src2 := NewCircle(geometry.Vec2{}, 1)
	if _, err := e.Add(src1, "front", material.Default(), false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add(src2, "front", material.Default(), false); err != nil {
		t.Fatalf("Add: %v", err)
	}

	before := tr.count()
	if err := e.Clear("front", false); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n := e.GetObservablesNumber(); n != 0 {
		t.Fatalf("expected 0 objects after Clear, got %d", n)
	}
	if got := tr.count() - before; got != 1 {
		t.Fatalf("expected Clear to emit exactly one scene update for both removals, got %d", got)
	}
	if last := tr.last(); len(last.Commands) != 2 {
		t.Fatalf("expected both DeleteObject commands batched into one update, got %d commands", len(last.Commands))
	}
	if src1.baseRef().engine != nil || src2.baseRef().engine != nil {
		t.Fatal("expected Clear to detach the engine back-reference from every surviving source")
	}
}

func TestAddValueDerivesKindFromValue(t *testing.T) {
	e := NewEngine()
	e.Run()
	_ = e.CreateWindow("scene", true)
	if _, err := e.AddValue(geometry.Ball{Radius: 1}, "scene", material.Default()); err != nil {
		t.Fatalf("AddValue: %v", err)
	}
	if _, err := e.AddValue(geometry.Point{}, "scene", material.Default()); err != ErrKindMismatch {
		t.Fatalf("expected ErrKindMismatch for a 2D value against a 3D window, got %v", err)
	}
}
