package systems

import (
	"fmt"
	"math"

	"github.com/automoto/orbs-mp/arena"
	cfg "github.com/automoto/orbs-mp/config"
)

func newTestArena() *arena.Arena {
	a := arena.New(cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.CellSize)
	n := 0
	a.NewID = func() string {
		n++
		return fmt.Sprintf("o%03d", n)
	}
	return a
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
