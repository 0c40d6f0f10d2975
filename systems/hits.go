package systems

import (
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/automoto/arena-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// HitReporter sends a hit for a bullet owned by ownerID that touched
// targetID. It decides on its own whether this client may report.
type HitReporter func(ownerID, targetID string) bool

// NewHitSystem removes bullets that touch an avatar other than their owner's.
// Only bullets fired by this client are passed to report; every other client
// sees the same contact and must stay silent.
func NewHitSystem(report HitReporter) ecs.System {
	return func(e *ecs.ECS) {
		var spent []*donburi.Entry
		components.Bullet.Each(e.World, func(entry *donburi.Entry) {
			b := components.Bullet.Get(entry)
			obj := components.Object.Get(entry).Object

			col := obj.Check(0, 0, tags.ResolvAvatar)
			if col == nil {
				return
			}
			for _, other := range col.Objects {
				target, ok := other.Data.(*donburi.Entry)
				if !ok || !e.World.Valid(target.Entity()) || !overlaps(obj, other) {
					continue
				}
				a := components.Avatar.Get(target)
				if a.ID == b.OwnerID {
					continue
				}
				if b.Local {
					report(b.OwnerID, a.ID)
				}
				spent = append(spent, entry)
				return
			}
		})

		for _, entry := range spent {
			factory.Destroy(e, entry)
		}
	}
}

// overlaps is the narrow phase: a circle of bullet radius around the bullet
// centre against the avatar's circle, both in space units.
func overlaps(bullet, avatar *resolv.Object) bool {
	bx, by := bullet.X+bullet.W/2, bullet.Y+bullet.H/2
	ax, ay := avatar.X+avatar.W/2, avatar.Y+avatar.H/2
	r := bullet.W/2 + avatar.W/2
	dx, dy := bx-ax, by-ay
	return dx*dx+dy*dy <= r*r
}

