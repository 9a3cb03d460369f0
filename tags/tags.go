package tags

import "github.com/yohamta/donburi"

var (
	Player    = donburi.NewTag().SetName("Player")
	LocalOrb  = donburi.NewTag().SetName("LocalOrb")
	RemoteOrb = donburi.NewTag().SetName("RemoteOrb")
	Food      = donburi.NewTag().SetName("Food")
)

// Resolv tags for broad-phase collision
const (
	ResolvLocalOrb  = "local_orb"
	ResolvRemoteOrb = "remote_orb"
	ResolvFood      = "food"
)
