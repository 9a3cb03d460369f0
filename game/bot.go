package game

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/systems"
)

// Bot drives a Game the way a player would: chase what it can eat, run from
// what can eat it, otherwise graze or wander.
type Bot struct {
	cfg cfg.BotDifficultyConfig
	rng *rand.Rand

	DecisionTimer int
	State         BotState
}

type BotState int

const (
	BotWander BotState = iota
	BotGraze
	BotChase
	BotFlee
)

func (s BotState) String() string {
	switch s {
	case BotGraze:
		return "graze"
	case BotChase:
		return "chase"
	case BotFlee:
		return "flee"
	}
	return "wander"
}

func NewBot(difficulty cfg.BotDifficulty, rng *rand.Rand) *Bot {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Bot{
		cfg: cfg.Bot.Difficulties[difficulty],
		rng: rng,
	}
}

// Update picks a new target once per reaction delay. A dead bot respawns.
func (b *Bot) Update(g *Game) {
	if !g.Alive() {
		g.Respawn()
		b.DecisionTimer = 0
		return
	}
	if b.DecisionTimer > 0 {
		b.DecisionTimer--
		return
	}
	b.DecisionTimer = b.cfg.ReactionDelay

	me, _ := g.Center()
	largest := b.largestOrb(g)

	threat, prey := b.scanRemotes(g, me, largest)
	switch {
	case threat != nil:
		b.State = BotFlee
		away, ok := me.Sub(components.Vector{X: threat.X, Y: threat.Y}).Unit()
		if !ok {
			away = components.Vector{X: 1}
		}
		dest := me.Add(away.Scale(b.cfg.WanderRadius))
		g.SetTarget(dest.X, dest.Y)
	case prey != nil:
		b.State = BotChase
		g.SetTarget(prey.X, prey.Y)
		dist := me.Dist(components.Vector{X: prey.X, Y: prey.Y})
		if dist < b.cfg.SplitRange && systems.CanEat(math.Floor(largest/2), prey.Radius) {
			g.Split()
		}
	default:
		if food, ok := b.nearestFood(g, me); ok {
			b.State = BotGraze
			g.SetTarget(food.X, food.Y)
			return
		}
		b.State = BotWander
		angle := b.rng.Float64() * 2 * math.Pi
		dist := b.rng.Float64() * b.cfg.WanderRadius
		g.SetTarget(me.X+math.Cos(angle)*dist, me.Y+math.Sin(angle)*dist)
	}
}

func (b *Bot) largestOrb(g *Game) float64 {
	var largest float64
	for _, o := range systems.PlayerOrbs(g.Arena, g.PlayerID) {
		largest = math.Max(largest, components.Orb.Get(o).Radius)
	}
	return largest
}

func (b *Bot) scanRemotes(g *Game, me components.Vector, largest float64) (threat, prey *OrbView) {
	threatDist, preyDist := math.MaxFloat64, math.MaxFloat64
	views := g.Orbs()
	for i := range views {
		v := &views[i]
		if v.Local {
			continue
		}
		d := me.Dist(components.Vector{X: v.X, Y: v.Y})
		if d > b.cfg.ChaseRange {
			continue
		}
		if systems.CanEat(v.Radius, largest) && d < threatDist {
			threat, threatDist = v, d
		} else if systems.CanEat(largest, v.Radius) && d < preyDist {
			prey, preyDist = v, d
		}
	}
	return threat, prey
}

func (b *Bot) nearestFood(g *Game, me components.Vector) (FoodView, bool) {
	var best FoodView
	found := false
	bestDist := b.cfg.ChaseRange
	for _, f := range g.Foods() {
		if d := me.Dist(components.Vector{X: f.X, Y: f.Y}); d < bestDist {
			best, bestDist, found = f, d, true
		}
	}
	return best, found
}
