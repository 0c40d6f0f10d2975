package factory

import (
	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateBullet(ecs *ecs.ECS, b network.BulletSpawn) *donburi.Entry {
	bullet := archetypes.Bullet.Spawn(ecs)

	components.Bullet.SetValue(bullet, components.BulletData{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Origin:    b.Position,
		Direction: b.Direction,
		Position:  b.Position,
		SpawnedAt: b.SpawnedAt,
		Local:     b.Local,
	})

	size := cfg.Bullet.Radius * 2
	x, y, w, h := SpaceRect(arenaData(ecs), b.Position, size, size)
	obj := resolv.NewObject(x, y, w, h, tags.ResolvBullet)
	obj.Data = bullet
	components.Object.SetValue(bullet, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	return bullet
}
