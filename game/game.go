// Package game runs one client's simulation: the local player, the shadows of
// remote players and the food around them, advanced one tick at a time.
package game

import (
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/shared/netconfig"
	"github.com/automoto/orbs-mp/shared/protocol"
	"github.com/automoto/orbs-mp/systems"
	"github.com/automoto/orbs-mp/systems/factory"
)

// Transport publishes outbound events. Implementations must not block the
// tick for long; the websocket client writes with a timeout.
type Transport interface {
	Publish(event string, payload any) error
}

type Game struct {
	Arena    *arena.Arena
	PlayerID string

	transport  Transport
	reconciler *systems.Reconciler
	food       *systems.FoodSpawner
	inbox      chan []byte

	target    components.Vector
	sinceSync time.Duration
	removals  []string
	dropped   int
}

type Option func(*Game)

// WithRand seeds the food spawner.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.food = systems.NewFoodSpawner(rng)
	}
}

// WithIDs replaces the orb id generator.
func WithIDs(next func() string) Option {
	return func(g *Game) {
		g.Arena.NewID = next
	}
}

// WithStaleTimeout expires remote players that stop reporting. Use it with
// relays that do not announce disconnects.
func WithStaleTimeout(d time.Duration) Option {
	return func(g *Game) {
		g.reconciler.StaleAfter = d
	}
}

// New creates a session for playerID with one orb at the spawn point.
// transport may be nil for an offline session.
func New(playerID string, transport Transport, opts ...Option) *Game {
	g := &Game{
		Arena:     arena.New(cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.CellSize),
		PlayerID:  playerID,
		transport: transport,
		reconciler: &systems.Reconciler{
			LocalID:      playerID,
			Blend:        cfg.Net.BlendFactor,
			PruneMissing: cfg.Net.PruneMissing,
		},
		inbox:  make(chan []byte, cfg.Net.InboxSize),
		target: components.Vector{X: cfg.Arena.SpawnX, Y: cfg.Arena.SpawnY},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.food == nil {
		g.food = systems.NewFoodSpawner(nil)
	}

	factory.CreateLocalPlayer(g.Arena, playerID)
	return g
}

// Deliver queues an inbound frame for the next tick. It never blocks; a full
// inbox drops the frame and reports false. Safe to call from any goroutine.
func (g *Game) Deliver(frame []byte) bool {
	select {
	case g.inbox <- frame:
		return true
	default:
		return false
	}
}

// HandleMessage applies one inbound frame immediately. Unknown events are
// ignored and return nil.
func (g *Game) HandleMessage(frame []byte) error {
	d, err := protocol.Decode(frame)
	if errors.Is(err, protocol.ErrUnknownEvent) {
		return nil
	}
	if err != nil {
		return err
	}
	switch d.Kind {
	case netconfig.KindPosition:
		g.reconciler.ApplyPosition(g.Arena, d.Position)
	case netconfig.KindOrbRemoved:
		g.reconciler.Remove(g.Arena, d.RemovedID)
	}
	return nil
}

// SetTarget moves the point every local orb steers toward.
func (g *Game) SetTarget(x, y float64) {
	g.target = g.Arena.Clamp(components.Vector{X: x, Y: y})
}

func (g *Game) Target() components.Vector {
	return g.target
}

// Split splits every local orb toward the current target and returns how
// many fragments were created.
func (g *Game) Split() int {
	return len(systems.SplitPlayer(g.Arena, g.PlayerID, g.target))
}

// Respawn gives a dead player a fresh orb at the spawn point.
func (g *Game) Respawn() bool {
	if g.Alive() {
		return false
	}
	factory.CreateLocalOrb(g.Arena, g.PlayerID, "", cfg.Arena.SpawnX, cfg.Arena.SpawnY, cfg.Orb.StartRadius)
	g.target = components.Vector{X: cfg.Arena.SpawnX, Y: cfg.Arena.SpawnY}
	return true
}

func (g *Game) Alive() bool {
	return systems.PlayerAlive(g.Arena, g.PlayerID)
}

// Tick advances the simulation by dt.
func (g *Game) Tick(dt time.Duration) {
	if dt > cfg.Arena.MaxDelta {
		dt = cfg.Arena.MaxDelta
	}

	g.drainInbox()
	g.Arena.Advance(dt)

	res := systems.ResolveCollisions(g.Arena)
	g.removals = append(g.removals, res.EatenOrbs...)

	systems.UpdateMovement(g.Arena, g.target, dt)
	systems.RunTimers(g.Arena)
	g.food.Update(g.Arena, dt)
	systems.UpdateScales(g.Arena.World, dt)
	g.reconciler.Interpolate(g.Arena)
	g.reconciler.ExpireStale(g.Arena)

	// Carry the remainder so reports keep a 50ms average at any tick rate.
	// A long frame publishes once; the backlog is dropped.
	g.sinceSync += dt
	if g.sinceSync >= cfg.Net.PositionInterval {
		g.sinceSync %= cfg.Net.PositionInterval
		g.publish(netconfig.EventPosition, systems.Snapshot(g.Arena, g.PlayerID))
	}
	g.flushRemovals()
}

func (g *Game) drainInbox() {
	for {
		select {
		case frame := <-g.inbox:
			if err := g.HandleMessage(frame); err != nil {
				g.dropped++
				log.Printf("[game] dropping frame: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) flushRemovals() {
	for _, id := range g.removals {
		g.publish(netconfig.EventOrbRemoved, id)
	}
	g.removals = g.removals[:0]
}

func (g *Game) publish(event string, payload any) {
	if g.transport == nil {
		return
	}
	if err := g.transport.Publish(event, payload); err != nil {
		log.Printf("[game] publish %s: %v", event, err)
	}
}
