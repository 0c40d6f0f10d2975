package factory

import (
	"math"

	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace creates the arena singleton and the collision space covering
// it, then adds every wall of the arena.
func CreateSpace(ecs *ecs.ECS, arena *leveldata.Arena, scale float64, cellSize int) *donburi.Entry {
	a := archetypes.Arena.Spawn(ecs)
	components.Arena.SetValue(a, components.ArenaData{Arena: arena, SpaceScale: scale})

	space := archetypes.Space.Spawn(ecs)
	w := int(math.Ceil(arena.Width * scale))
	h := int(math.Ceil(arena.Depth * scale))
	components.Space.Set(space, resolv.NewSpace(w, h, cellSize, cellSize))

	for _, r := range arena.Walls {
		CreateWall(ecs, r)
	}
	return space
}

// SpaceRect converts a footprint centred on pos with the given extents into
// space coordinates.
func SpaceRect(ad *components.ArenaData, pos gamemath.Vec3, w, d float64) (x, y, sw, sh float64) {
	s := ad.SpaceScale
	return (pos.X - w/2 - ad.MinX()) * s, (pos.Z - d/2 - ad.MinZ()) * s, w * s, d * s
}

// MoveObject recentres obj on pos.
func MoveObject(ecs *ecs.ECS, obj *resolv.Object, pos gamemath.Vec3) {
	ad := arenaData(ecs)
	obj.X = (pos.X-ad.MinX())*ad.SpaceScale - obj.W/2
	obj.Y = (pos.Z-ad.MinZ())*ad.SpaceScale - obj.H/2
	obj.Update()
}

// Destroy removes e and its collision object.
func Destroy(ecs *ecs.ECS, e *donburi.Entry) {
	if e.HasComponent(components.Object) {
		obj := components.Object.Get(e)
		if spaceEntry, ok := components.Space.First(ecs.World); ok && obj.Object != nil {
			components.Space.Get(spaceEntry).Remove(obj.Object)
		}
	}
	ecs.World.Remove(e.Entity())
}

func addToSpace(ecs *ecs.ECS, obj *resolv.Object) {
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}

func arenaData(ecs *ecs.ECS) *components.ArenaData {
	e, ok := components.Arena.First(ecs.World)
	if !ok {
		panic("factory: arena not created")
	}
	return components.Arena.Get(e)
}
