package components

import "github.com/yohamta/donburi"

// EnemyData stores the reconciliation target of a remote orb.
type EnemyData struct {
	LastReportedX, LastReportedY float64
	Reports                      int
}

var Enemy = donburi.NewComponentType[EnemyData]()
