package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/game"
	"github.com/automoto/orbs-mp/network"
	"github.com/automoto/orbs-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ArenaScene plays one session: it feeds input into a game.Game, ticks it
// once per frame and draws it centered on the local player.
type ArenaScene struct {
	sceneChanger SceneChanger
	session      Session
	game         *game.Game
	netClient    *network.Client

	camera *systems.Camera
	peak   float64
}

// NewArenaScene starts a session. client may be nil for offline play; when
// set it must already be connected and the game must be its frame sink.
func NewArenaScene(sc SceneChanger, s Session, g *game.Game, client *network.Client) *ArenaScene {
	return &ArenaScene{
		sceneChanger: sc,
		session:      s,
		game:         g,
		netClient:    client,
		camera:       systems.NewCamera(cfg.Arena.SpawnX, cfg.Arena.SpawnY),
	}
}

// StartSession connects to the relay, if any, and returns the arena scene.
func StartSession(sc SceneChanger, s Session) (*ArenaScene, error) {
	var (
		g         *game.Game
		client    *network.Client
		transport game.Transport
	)
	if s.RelayAddress != "" {
		client = network.NewClient(s.PlayerID, func(frame []byte) {
			if !g.Deliver(frame) {
				log.Println("[arena] inbox full, dropping frame")
			}
		})
		transport = client
	}
	var opts []game.Option
	if client != nil && !s.DisconnectNotices {
		opts = append(opts, game.WithStaleTimeout(cfg.Net.StaleTimeout))
	}
	g = game.New(s.PlayerID, transport, opts...)

	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Connect(ctx, s.RelayAddress); err != nil {
			return nil, err
		}
	}
	return NewArenaScene(sc, s, g, client), nil
}

func (as *ArenaScene) Update() {
	if as.netClient != nil {
		if st := as.netClient.State(); st == network.StateError {
			log.Printf("[arena] connection lost: %v", as.netClient.LastError())
			as.netClient = nil
		}
	}

	frame := float64(cfg.Arena.FrameSize)
	cx, cy := ebiten.CursorPosition()
	as.game.SetTarget(as.camera.ToWorld(float64(cx), float64(cy), frame))

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		as.game.Split()
	}

	as.game.Tick(ebitenTick())

	if center, ok := as.game.Center(); ok {
		as.camera.Follow(center, as.game.Size())
	}
	as.peak = math.Max(as.peak, as.game.Size())

	if !as.game.Alive() {
		as.sceneChanger.ChangeScene(NewGameOverScene(as.sceneChanger, as, as.peak))
	}
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Background)

	frame := float64(cfg.Arena.FrameSize)
	zoom := as.camera.Zoom

	as.drawGrid(screen, frame)

	for _, f := range as.game.Foods() {
		c := cfg.FoodColors[f.Variant%len(cfg.FoodColors)]
		x, y := as.camera.ToScreen(f.X, f.Y, frame)
		vector.FillCircle(screen, float32(x), float32(y), float32(f.Radius*zoom), c, true)
	}

	for _, o := range as.game.Orbs() {
		var c color.RGBA
		if o.Local {
			c = cfg.LocalOrb
			if o.Spawned {
				c = cfg.LightGreen
			}
		} else {
			c = cfg.EnemyColors[o.ColorIndex%len(cfg.EnemyColors)]
		}
		r := float64(o.Scale) * cfg.Orb.BaseSpriteRadius * zoom
		x, y := as.camera.ToScreen(o.X, o.Y, frame)
		vector.FillCircle(screen, float32(x), float32(y), float32(r), c, true)
	}

	status := "offline"
	if as.netClient != nil {
		status = as.netClient.State().String()
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("size %.0f  orbs %d  players %d  %s  TPS %.0f",
		as.game.Size(), len(as.game.Orbs()), as.game.RemotePlayers()+1, status, ebiten.ActualTPS()), 8, 8)
	ebitenutil.DebugPrintAt(screen, "mouse: steer   space: split", 8, cfg.Arena.FrameSize-20)
}

func (as *ArenaScene) drawGrid(screen *ebiten.Image, frame float64) {
	const step = 100.0
	w, h := cfg.Arena.Width, cfg.Arena.Height
	for x := 0.0; x <= w; x += step {
		x0, y0 := as.camera.ToScreen(x, 0, frame)
		x1, y1 := as.camera.ToScreen(x, h, frame)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, cfg.GridLine, false)
	}
	for y := 0.0; y <= h; y += step {
		x0, y0 := as.camera.ToScreen(0, y, frame)
		x1, y1 := as.camera.ToScreen(w, y, frame)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, cfg.GridLine, false)
	}
}

// Close drops the relay connection.
func (as *ArenaScene) Close() {
	if as.netClient != nil {
		as.netClient.Disconnect()
		as.netClient = nil
	}
}

func ebitenTick() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}
