package main

import (
	"flag"
	"log"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/network"
	"github.com/automoto/orbs-mp/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

type Game struct {
	scene scenes.Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene scenes.Scene) {
	g.scene = scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return cfg.Arena.FrameSize, cfg.Arena.FrameSize
}

func main() {
	if err := cfg.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	relay := flag.String("relay", "", "Relay address to join directly (host:port or ws:// URL)")
	directory := flag.String("directory", "http://localhost:8080", "Relay directory URL")
	region := flag.String("region", "", "Only list relays in this region")
	silent := flag.Bool("silent-relay", false, "The -relay does not announce disconnects; time out silent players")
	offline := flag.Bool("offline", false, "Play alone without a relay")
	flag.Parse()

	store, err := network.OpenStore("orbs-mp")
	if err != nil {
		log.Printf("Warning: could not open data store: %v", err)
	}
	playerID, err := network.LoadIdentity(store)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	log.Printf("Playing as %s", playerID)

	session := scenes.Session{
		PlayerID:     playerID,
		RelayAddress: *relay,
		DirectoryURL: *directory,
		Region:       *region,

		DisconnectNotices: !*silent,
	}

	g := &Game{}
	switch {
	case *offline:
		session.RelayAddress = ""
		fallthrough
	case *relay != "":
		arena, err := scenes.StartSession(g, session)
		if err != nil {
			log.Fatalf("Failed to join relay: %v", err)
		}
		g.scene = arena
	default:
		g.scene = scenes.NewBrowserScene(g, session)
	}

	ebiten.SetWindowSize(cfg.Arena.FrameSize, cfg.Arena.FrameSize)
	ebiten.SetWindowTitle("Orbs")
	ebiten.SetTPS(cfg.Arena.TickRate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
