package components

import "github.com/yohamta/donburi"

// Position is the orb or food center.
var Position = donburi.NewComponentType[Vector]()
