package archetypes

import (
	"github.com/automoto/orbs-mp/components"
	"github.com/automoto/orbs-mp/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
	)
	LocalOrb = newArchetype(
		tags.LocalOrb,
		components.Orb,
		components.Owner,
		components.Position,
		components.Velocity,
		components.Launch,
		components.Scale,
		components.Object,
	)
	RemoteOrb = newArchetype(
		tags.RemoteOrb,
		components.Orb,
		components.Owner,
		components.Position,
		components.Enemy,
		components.Scale,
		components.Object,
	)
	Food = newArchetype(
		tags.Food,
		components.Food,
		components.Position,
		components.Object,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
