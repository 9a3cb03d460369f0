package scenes

import (
	"fmt"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOverScene is shown once the local player owns no orbs. The arena keeps
// ticking underneath so remote players stay live.
type GameOverScene struct {
	sceneChanger SceneChanger
	arena        *ArenaScene
	peak         float64
}

func NewGameOverScene(sc SceneChanger, arena *ArenaScene, peak float64) *GameOverScene {
	return &GameOverScene{sceneChanger: sc, arena: arena, peak: peak}
}

func (gs *GameOverScene) Update() {
	gs.arena.game.Tick(ebitenTick())

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		gs.arena.game.Respawn()
		gs.arena.peak = 0
		gs.sceneChanger.ChangeScene(gs.arena)
	}
}

func (gs *GameOverScene) Draw(screen *ebiten.Image) {
	gs.arena.Draw(screen)

	mid := cfg.Arena.FrameSize / 2
	ebitenutil.DebugPrintAt(screen, "YOU WERE EATEN", mid-42, mid-20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("peak size %.0f", gs.peak), mid-40, mid)
	ebitenutil.DebugPrintAt(screen, "press enter to respawn", mid-66, mid+20)
}
