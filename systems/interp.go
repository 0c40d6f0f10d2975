package systems

import (
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewInterpSystem keeps one avatar per living player in the mirror snapshot
// and eases every remote avatar's displayed pose toward its latest target.
// The local avatar is placed exactly at the predicted pose.
func NewInterpSystem(snapshot func() map[string]messages.Player, localID func() string) ecs.System {
	return func(e *ecs.ECS) {
		players := snapshot()
		local := localID()
		dt := clock(e).Dt

		existing := make(map[string]*donburi.Entry)
		var stale []*donburi.Entry
		components.Avatar.Each(e.World, func(entry *donburi.Entry) {
			a := components.Avatar.Get(entry)
			p, ok := players[a.ID]
			if !ok || p.IsDead || a.Local != (a.ID == local) {
				stale = append(stale, entry)
				return
			}
			existing[a.ID] = entry
		})
		for _, entry := range stale {
			factory.Destroy(e, entry)
		}

		for id, p := range players {
			if p.IsDead {
				continue
			}
			entry, ok := existing[id]
			if !ok {
				entry = factory.CreateAvatar(e, p, id == local)
			}
			syncAvatar(e, entry, p, dt)
		}
	}
}

func syncAvatar(e *ecs.ECS, entry *donburi.Entry, p messages.Player, dt float64) {
	a := components.Avatar.Get(entry)
	a.Nickname, a.Team, a.HP, a.Score = p.Nickname, p.Team, p.HP, p.Score

	pose := components.Pose.Get(entry)
	pose.Target, pose.TargetYaw = p.Position, p.Rotation
	if a.Local || gamemath.Dist(pose.Display, pose.Target) > cfg.Interp.SnapDistance {
		pose.Display, pose.DisplayYaw = pose.Target, pose.TargetYaw
	} else {
		k := cfg.Interp.ConvergenceRate
		pose.Display = gamemath.Smooth(pose.Display, pose.Target, k, dt)
		pose.DisplayYaw = gamemath.SmoothYaw(pose.DisplayYaw, pose.TargetYaw, k, dt)
	}

	factory.MoveObject(e, components.Object.Get(entry).Object, pose.Display)
}
