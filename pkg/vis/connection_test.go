package vis

import (
	"testing"

	"github.com/kdsutter/visstream/internal/wire"
	"github.com/kdsutter/visstream/pkg/geometry"
	"github.com/kdsutter/visstream/pkg/material"
)

func TestTryOnOpenRejectsSecondPeer(t *testing.T) {
	e := NewEngine()
	e.Run()
	first := &fakeTransport{}
	if !e.TryOnOpen(first) {
		t.Fatal("expected the first peer to be admitted")
	}
	second := &fakeTransport{}
	if e.TryOnOpen(second) {
		t.Fatal("expected a second concurrent peer to be rejected")
	}
	if !e.IsConnected() {
		t.Fatal("expected the first peer's connection to continue")
	}
}

func TestTryOnOpenReplaysWindowsAndObjects(t *testing.T) {
	e := NewEngine()
	e.Run()
	_ = e.CreateWindow("front", false)
	if _, err := e.AddValue(geometry.Point{Pos: geometry.Vec2{X: 1, Y: 2}}, "front", material.Default()); err != nil {
		t.Fatalf("AddValue: %v", err)
	}

	tr := &fakeTransport{}
	if !e.TryOnOpen(tr) {
		t.Fatal("expected TryOnOpen to succeed")
	}

	if tr.count() != 2 {
		t.Fatalf("expected a CreateWindow replay and an AddObject replay, got %d sends", tr.count())
	}
	if tr.sent[0].Commands[0].Kind != wire.CmdCreateWindow {
		t.Fatalf("expected first replay to be CreateWindow, got %v", tr.sent[0].Commands[0].Kind)
	}
	if tr.sent[1].Commands[0].Kind != wire.CmdAddObject {
		t.Fatalf("expected second replay to be AddObject, got %v", tr.sent[1].Commands[0].Kind)
	}
}

func TestOnCloseOnlyDetachesCurrentTransport(t *testing.T) {
	e := NewEngine()
	e.Run()
	first := &fakeTransport{}
	e.TryOnOpen(first)

	stale := &fakeTransport{}
	e.OnClose(stale)
	if !e.IsConnected() {
		t.Fatal("OnClose with a stale transport should not detach the current peer")
	}

	e.OnClose(first)
	if e.IsConnected() {
		t.Fatal("expected the current peer to be detached")
	}
}

func TestSendFailureDropsTransport(t *testing.T) {
	e := NewEngine()
	e.Run()
	tr := &fakeTransport{failOn: 1}
	e.TryOnOpen(tr)

	_ = e.CreateWindow("front", false)
	if e.IsConnected() {
		t.Fatal("expected a failed send to drop the transport")
	}
}

func TestSendLockedNoopWithoutTransport(t *testing.T) {
	e := NewEngine()
	e.Run()
	if err := e.CreateWindow("front", false); err != nil {
		t.Fatalf("CreateWindow without a peer should still succeed: %v", err)
	}
}
