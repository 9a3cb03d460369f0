package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// OrbKind tags which side of the network an orb lives on.
type OrbKind int

const (
	LocalOrb  OrbKind = iota // simulated by this client
	RemoteOrb                // shadow of another client's orb, driven by reconciliation
)

func (k OrbKind) String() string {
	if k == RemoteOrb {
		return "remote"
	}
	return "local"
}

type OrbData struct {
	ID        string
	Kind      OrbKind
	Radius    float64
	Spawned   bool          // just ejected by a split; no collision with its own group
	CanReform bool          // may merge back into its group
	CreatedAt time.Duration // simulated time
}

var Orb = donburi.NewComponentType[OrbData]()
