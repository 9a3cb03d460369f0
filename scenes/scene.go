// Package scenes holds the desktop client's screens.
package scenes

import "github.com/hajimehoshi/ebiten/v2"

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

// SceneChanger swaps the active scene.
type SceneChanger interface {
	ChangeScene(scene Scene)
}

// Session is what every scene needs to reach the relay.
type Session struct {
	PlayerID     string
	RelayAddress string // host:port or ws:// URL; empty plays offline
	DirectoryURL string // relay directory; empty skips the browser
	Region       string // directory region filter; empty lists all
	// DisconnectNotices is set when the relay announces departed players.
	// Without it, silent remote players are timed out.
	DisconnectNotices bool
}
