package game

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/shared/messages"
	"github.com/automoto/orbs-mp/shared/netconfig"
	"github.com/automoto/orbs-mp/shared/protocol"
)

type published struct {
	event   string
	payload any
}

type fakeTransport struct {
	sent []published
	err  error
}

func (f *fakeTransport) Publish(event string, payload any) error {
	f.sent = append(f.sent, published{event, payload})
	return f.err
}

func (f *fakeTransport) events(name string) []published {
	var out []published
	for _, p := range f.sent {
		if p.event == name {
			out = append(out, p)
		}
	}
	return out
}

func newTestGame(t *testing.T) (*Game, *fakeTransport) {
	t.Helper()
	tr := &fakeTransport{}
	n := 0
	g := New("me", tr,
		WithRand(rand.New(rand.NewPCG(7, 7))),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("me-%03d", n)
		}),
	)
	return g, tr
}

func positionFrame(t *testing.T, player string, orbs ...messages.OrbState) []byte {
	t.Helper()
	b, err := protocol.EncodePosition(messages.NewPositionEvent(player, orbs))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return b
}

func TestNewGameSpawnsOneOrb(t *testing.T) {
	g, _ := newTestGame(t)
	orbs := g.Orbs()
	if len(orbs) != 1 {
		t.Fatalf("got %d orbs, want 1", len(orbs))
	}
	o := orbs[0]
	if !o.Local || o.Radius != cfg.Orb.StartRadius || o.X != cfg.Arena.SpawnX {
		t.Fatalf("spawn orb = %+v", o)
	}
	if !g.Alive() {
		t.Fatalf("fresh player should be alive")
	}
}

func TestTickPublishesPositionOnCadence(t *testing.T) {
	g, tr := newTestGame(t)

	for i := 0; i < 3; i++ {
		g.Tick(16 * time.Millisecond)
	}
	if n := len(tr.events(netconfig.EventPosition)); n != 0 {
		t.Fatalf("published %d positions before 50ms", n)
	}
	g.Tick(16 * time.Millisecond)
	pos := tr.events(netconfig.EventPosition)
	if len(pos) != 1 {
		t.Fatalf("published %d positions after 64ms, want 1", len(pos))
	}
	ev, ok := pos[0].payload.(messages.PositionEvent)
	if !ok {
		t.Fatalf("payload is %T", pos[0].payload)
	}
	if ev.ID != "me" || len(ev.Orbs) != 1 || ev.Orbs[0].ID != "me-001" {
		t.Fatalf("snapshot = %+v", ev)
	}
}

func TestPositionCadenceHoldsAtAnyTickRate(t *testing.T) {
	tests := []struct {
		name  string
		dt    time.Duration
		ticks int
		min   int
		max   int
	}{
		// time.Second/60 truncates to 16.666666ms, so a second falls a few
		// nanoseconds short of the twentieth report.
		{"60 TPS", time.Second / 60, 60, 19, 20},
		{"25 TPS", 40 * time.Millisecond, 60, 48, 48},
		{"20 TPS", 50 * time.Millisecond, 40, 40, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, tr := newTestGame(t)
			for i := 0; i < tt.ticks; i++ {
				g.Tick(tt.dt)
			}
			n := len(tr.events(netconfig.EventPosition))
			if n < tt.min || n > tt.max {
				t.Fatalf("published %d positions over %s, want %d..%d",
					n, time.Duration(tt.ticks)*tt.dt, tt.min, tt.max)
			}
		})
	}
}

func TestStaleTimeoutDropsSilentPlayer(t *testing.T) {
	g, _ := newTestGame(t)
	WithStaleTimeout(time.Second)(g)
	g.Deliver(positionFrame(t, "them", messages.OrbState{ID: "t1", X: 100, Y: 100, R: 10}))
	g.Tick(16 * time.Millisecond)
	if g.RemotePlayers() != 1 {
		t.Fatalf("remote player not tracked")
	}

	for i := 0; i < 20; i++ {
		g.Tick(50 * time.Millisecond)
	}
	if g.RemotePlayers() != 0 {
		t.Fatalf("silent player still tracked after the stale timeout")
	}
}

func TestEatingRemoteOrbEmitsRemoval(t *testing.T) {
	g, tr := newTestGame(t)
	g.Deliver(positionFrame(t, "them", messages.OrbState{ID: "t1", X: cfg.Arena.SpawnX + 5, Y: cfg.Arena.SpawnY, R: 10}))

	g.Tick(16 * time.Millisecond)

	removed := tr.events(netconfig.EventOrbRemoved)
	if len(removed) != 1 || removed[0].payload != "t1" {
		t.Fatalf("removals = %+v, want t1", removed)
	}
	if g.Size() != cfg.Orb.StartRadius+10 {
		t.Fatalf("size = %v, want %v", g.Size(), cfg.Orb.StartRadius+10)
	}
	if g.RemotePlayers() != 0 {
		t.Fatalf("eaten player still tracked")
	}
}

func TestRemovalFrameDropsRemotePlayer(t *testing.T) {
	g, _ := newTestGame(t)
	g.Deliver(positionFrame(t, "them",
		messages.OrbState{ID: "t1", X: 100, Y: 100, R: 40},
		messages.OrbState{ID: "t2", X: 300, Y: 100, R: 40},
	))
	g.Tick(16 * time.Millisecond)
	if g.RemotePlayers() != 1 {
		t.Fatalf("remote players = %d, want 1", g.RemotePlayers())
	}

	b, err := protocol.EncodeOrbRemoved("them")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	g.Deliver(b)
	g.Tick(16 * time.Millisecond)

	if g.RemotePlayers() != 0 || len(g.Orbs()) != 1 {
		t.Fatalf("remote state left after removal: players=%d orbs=%d", g.RemotePlayers(), len(g.Orbs()))
	}
}

func TestBadFramesAreDropped(t *testing.T) {
	g, _ := newTestGame(t)

	if err := g.HandleMessage([]byte(`{"t":"chat","p":"hello"}`)); err != nil {
		t.Fatalf("unknown event returned %v", err)
	}
	if err := g.HandleMessage([]byte("not json")); err == nil {
		t.Fatalf("malformed frame accepted")
	}

	g.Deliver([]byte("not json"))
	g.Tick(16 * time.Millisecond)
	if g.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", g.Dropped())
	}
}

func TestDeliverNeverBlocks(t *testing.T) {
	g, _ := newTestGame(t)
	frame := positionFrame(t, "them")
	for i := 0; i < cfg.Net.InboxSize; i++ {
		if !g.Deliver(frame) {
			t.Fatalf("inbox full after %d frames", i)
		}
	}
	if g.Deliver(frame) {
		t.Fatalf("overfull inbox accepted a frame")
	}
}

func TestSplitThenReformThroughTicks(t *testing.T) {
	g, _ := newTestGame(t)
	if n := g.Split(); n != 1 {
		t.Fatalf("split made %d fragments, want 1", n)
	}
	if len(g.Orbs()) != 2 {
		t.Fatalf("expected two orbs after split")
	}

	for i := 0; i < 500; i++ {
		g.Tick(16 * time.Millisecond)
	}
	if len(g.Orbs()) != 2 {
		t.Fatalf("fragments merged during the cooldown")
	}

	for i := 0; i < 250; i++ {
		g.Tick(16 * time.Millisecond)
	}
	orbs := g.Orbs()
	if len(orbs) != 1 {
		t.Fatalf("fragments did not merge after the cooldown, have %d", len(orbs))
	}
	if orbs[0].Radius < cfg.Orb.StartRadius {
		t.Fatalf("merged radius %v below the original", orbs[0].Radius)
	}
}

func TestRespawnOnlyWhenDead(t *testing.T) {
	g, _ := newTestGame(t)
	if g.Respawn() {
		t.Fatalf("respawned a living player")
	}
	b, _ := protocol.EncodeOrbRemoved("me-001")
	if err := g.HandleMessage(b); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if g.Alive() {
		t.Fatalf("player should be dead")
	}
	if !g.Respawn() || !g.Alive() {
		t.Fatalf("respawn failed")
	}
}
