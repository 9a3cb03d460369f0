package factory

import (
	"github.com/automoto/orbs-mp/archetypes"
	"github.com/automoto/orbs-mp/arena"
	"github.com/automoto/orbs-mp/components"
	cfg "github.com/automoto/orbs-mp/config"
	"github.com/yohamta/donburi"
)

// CreateLocalPlayer registers this client's player and its first orb at the
// arena spawn point.
func CreateLocalPlayer(a *arena.Arena, id string) *donburi.Entry {
	player := archetypes.Player.Spawn(a.World)
	components.Player.SetValue(player, components.PlayerData{
		ID:    id,
		Local: true,
	})
	a.IndexPlayer(id, player.Entity())

	CreateLocalOrb(a, id, "", cfg.Arena.SpawnX, cfg.Arena.SpawnY, cfg.Orb.StartRadius)
	return player
}

// CreateRemotePlayer registers a player first seen over the network. Its
// orbs are created lazily by reconciliation.
func CreateRemotePlayer(a *arena.Arena, id string) *donburi.Entry {
	player := archetypes.Player.Spawn(a.World)
	components.Player.SetValue(player, components.PlayerData{
		ID:         id,
		ColorIndex: len(a.PlayerIDs()) % len(cfg.EnemyColors),
		LastHeard:  a.Now,
	})
	a.IndexPlayer(id, player.Entity())
	return player
}
