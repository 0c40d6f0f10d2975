package archetypes

import (
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Avatar = newArchetype(
		tags.Avatar,
		components.Avatar,
		components.Pose,
		components.Object,
		components.Flash,
	)
	Bullet = newArchetype(
		tags.Bullet,
		components.Bullet,
		components.Object,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Arena = newArchetype(
		components.Arena,
	)
	Clock = newArchetype(
		components.Clock,
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

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.World.Create(
		append(a.components, cs...)...,
	))
	return e
}
