package core

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/automoto/orbs-mp/directory"
)

func TestRegistrationLifecycle(t *testing.T) {
	reg := directory.NewRegistry(time.Minute)
	defer reg.Stop()
	dir := httptest.NewServer(directory.NewMux(reg))
	defer dir.Close()

	relay := NewServer(DefaultOptions())
	r := NewRegistration(dir.URL+"/", "test relay", "localhost:3000", "local", relay)

	if err := r.register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	first := r.ID()
	if first == "" {
		t.Fatalf("no id assigned")
	}

	if err := r.sendHeartbeat(); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	reg.Remove(first)
	if err := r.sendHeartbeat(); err != nil {
		t.Fatalf("heartbeat after expiry: %v", err)
	}
	if r.ID() == "" || r.ID() == first {
		t.Fatalf("expected re-registration with a new id, got %q", r.ID())
	}

	r.Stop()
	r.Stop()
	if reg.Len() != 0 {
		t.Fatalf("relay still listed after Stop")
	}
}

func TestRegistrationAdvertisesRelayBehavior(t *testing.T) {
	tests := []struct {
		announce bool
		want     directory.DisconnectMode
	}{
		{true, directory.DisconnectAnnounce},
		{false, directory.DisconnectSilent},
	}
	for _, tt := range tests {
		reg := directory.NewRegistry(time.Minute)
		dir := httptest.NewServer(directory.NewMux(reg))

		opts := DefaultOptions()
		opts.AnnounceDisconnect = tt.announce
		r := NewRegistration(dir.URL, "relay", "relay.example:3000", "", NewServer(opts))
		if err := r.register(); err != nil {
			t.Fatalf("register: %v", err)
		}

		relays := reg.List("")
		if len(relays) != 1 {
			t.Fatalf("directory lists %+v", relays)
		}
		got := relays[0]
		if got.Disconnect != tt.want || got.AnnouncesDisconnects() != tt.announce {
			t.Fatalf("announce=%v advertised %q", tt.announce, got.Disconnect)
		}
		if got.DialURL() != "ws://relay.example:3000/ws" {
			t.Fatalf("dial url = %s", got.DialURL())
		}

		dir.Close()
		reg.Stop()
	}
}
