package components

import (
	"time"

	"github.com/yohamta/donburi"
)

type PlayerData struct {
	ID         string
	Local      bool
	ColorIndex int           // remote players only
	LastHeard  time.Duration // arena time of the last position report, remote players only
}

var Player = donburi.NewComponentType[PlayerData]()
