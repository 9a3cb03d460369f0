package systems

import (
	"math/rand/v2"
	"time"

	"github.com/automoto/orbs-mp/arena"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/systems/factory"
	"github.com/automoto/orbs-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var foodQuery = donburi.NewQuery(filter.Contains(tags.Food))

// FoodSpawner drops one food every Interval of simulated time.
type FoodSpawner struct {
	Interval time.Duration
	MaxCount int
	Variants int

	rng     *rand.Rand
	elapsed time.Duration
}

// NewFoodSpawner builds a spawner from config. A nil rng gets a randomly
// seeded one.
func NewFoodSpawner(rng *rand.Rand) *FoodSpawner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FoodSpawner{
		Interval: cfg.Food.SpawnInterval,
		MaxCount: cfg.Food.MaxCount,
		Variants: cfg.Food.Variants,
		rng:      rng,
	}
}

// Update advances the spawn clock by dt and returns how many foods spawned.
func (f *FoodSpawner) Update(a *arena.Arena, dt time.Duration) int {
	if f.Interval <= 0 {
		return 0
	}
	f.elapsed += dt
	spawned := 0
	for f.elapsed >= f.Interval {
		f.elapsed -= f.Interval
		if f.MaxCount > 0 && FoodCount(a) >= f.MaxCount {
			continue
		}
		x := f.rng.Float64() * a.Width
		y := f.rng.Float64() * a.Height
		variant := 0
		if f.Variants > 0 {
			variant = f.rng.IntN(f.Variants)
		}
		factory.CreateFood(a, x, y, variant)
		spawned++
	}
	return spawned
}

func FoodCount(a *arena.Arena) int {
	return foodQuery.Count(a.World)
}
