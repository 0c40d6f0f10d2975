package factory

import (
	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateWall(ecs *ecs.ECS, r leveldata.Rect) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)

	ad := arenaData(ecs)
	s := ad.SpaceScale
	obj := resolv.NewObject((r.X-ad.MinX())*s, (r.Z-ad.MinZ())*s, r.W*s, r.D*s, tags.ResolvSolid)
	obj.Data = wall // Link for O(1) lookup

	components.Object.SetValue(wall, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	return wall
}
