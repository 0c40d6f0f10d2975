package systems

import (
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/automoto/arena-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateBullets advances every bullet along its straight path and expires the
// ones that outlived their TTL, left the arena or ran into a wall. Removal is
// purely local and never reported.
func UpdateBullets(e *ecs.ECS) {
	now := clock(e).Now
	ad := arena(e)

	var expired []*donburi.Entry
	components.Bullet.Each(e.World, func(entry *donburi.Entry) {
		b := components.Bullet.Get(entry)
		age := now.Sub(b.SpawnedAt)
		if age >= cfg.Bullet.TTL {
			expired = append(expired, entry)
			return
		}
		if age < 0 {
			age = 0
		}
		b.Position = gamemath.Travel(b.Origin, b.Direction, cfg.Bullet.Speed, age.Seconds())
		if !ad.Contains(b.Position.X, b.Position.Z) {
			expired = append(expired, entry)
			return
		}

		obj := components.Object.Get(entry).Object
		factory.MoveObject(e, obj, b.Position)
		if col := obj.Check(0, 0, tags.ResolvSolid); col != nil {
			for _, wall := range col.Objects {
				if rectsOverlap(obj.X, obj.Y, obj.W, obj.H, wall) {
					expired = append(expired, entry)
					return
				}
			}
		}
	})

	for _, entry := range expired {
		factory.Destroy(e, entry)
	}
}
