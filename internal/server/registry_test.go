package server

import (
	"net/netip"
	"testing"
)

func addr(port uint16) netip.AddrPort {
	return netip.AddrPortFrom(netip.AddrFrom4([4]byte{127, 0, 0, 1}), port)
}

func TestRegistrySubscribeIsIdempotent(t *testing.T) {
	r := NewRegistry()
	if !r.Subscribe("room", addr(1000)) {
		t.Fatalf("expected first subscribe to add")
	}
	if r.Subscribe("room", addr(1000)) {
		t.Fatalf("expected duplicate subscribe to be a no-op")
	}
	subs, ok := r.Subscribers("room")
	if !ok || len(subs) != 1 {
		t.Fatalf("expected one subscriber, got %v ok=%v", subs, ok)
	}
}

func TestRegistryUnsubscribeAbsentIsNoop(t *testing.T) {
	r := NewRegistry()
	if r.Unsubscribe("missing", addr(1000)) {
		t.Fatalf("expected unsubscribe from unknown channel to be a no-op")
	}
	r.Subscribe("room", addr(1000))
	if r.Unsubscribe("room", addr(2000)) {
		t.Fatalf("expected unsubscribe of absent address to be a no-op")
	}
	if !r.Unsubscribe("room", addr(1000)) {
		t.Fatalf("expected unsubscribe to remove")
	}
	if r.Unsubscribe("room", addr(1000)) {
		t.Fatalf("expected repeated unsubscribe to be a no-op")
	}
}

func TestRegistryKeepsEmptyChannels(t *testing.T) {
	r := NewRegistry()
	r.Subscribe("room", addr(1000))
	r.Unsubscribe("room", addr(1000))

	subs, ok := r.Subscribers("room")
	if !ok {
		t.Fatalf("expected channel entry to survive")
	}
	if len(subs) != 0 {
		t.Fatalf("expected empty subscriber set, got %v", subs)
	}
	if got := r.Channels(); len(got) != 1 || got[0] != "room" {
		t.Fatalf("unexpected channels: %v", got)
	}
}

func TestRegistryChannelsAreCaseSensitive(t *testing.T) {
	r := NewRegistry()
	r.Subscribe("Room", addr(1000))
	if _, ok := r.Subscribers("room"); ok {
		t.Fatalf("expected lower-case channel to be distinct")
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Subscribe("b", addr(2000))
	r.Subscribe("b", addr(1000))
	r.Subscribe("a", addr(3000))

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
	if got := snap["b"]; len(got) != 2 || got[0] != "127.0.0.1:1000" || got[1] != "127.0.0.1:2000" {
		t.Fatalf("unexpected subscribers for b: %v", got)
	}
}

func TestRegistrySnapshotIsConsistent(t *testing.T) {
	r := NewRegistry()
	r.Subscribe("empty", addr(1000))
	r.Unsubscribe("empty", addr(1000))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := uint16(0); i < 200; i++ {
			r.Subscribe("a", addr(2000+i))
			r.Subscribe("b", addr(2000+i))
		}
	}()

	for i := 0; i < 100; i++ {
		snap := r.Snapshot()
		if _, ok := snap["empty"]; !ok {
			t.Fatalf("snapshot dropped empty channel: %v", snap)
		}
		// a is always written before b, so one view never shows b ahead.
		if len(snap["b"]) > len(snap["a"]) {
			t.Fatalf("snapshot mixed registry states: a=%d b=%d", len(snap["a"]), len(snap["b"]))
		}
	}
	<-done

	snap := r.Snapshot()
	if len(snap["a"]) != 200 || len(snap["b"]) != 200 {
		t.Fatalf("unexpected final snapshot sizes: a=%d b=%d", len(snap["a"]), len(snap["b"]))
	}
}
