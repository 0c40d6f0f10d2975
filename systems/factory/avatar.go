package factory

import (
	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateAvatar spawns the presentation entity for p. The displayed pose
// starts at the target so a new avatar does not slide in from the origin.
func CreateAvatar(ecs *ecs.ECS, p messages.Player, local bool) *donburi.Entry {
	avatar := archetypes.Avatar.Spawn(ecs)

	components.Avatar.SetValue(avatar, components.AvatarData{
		ID:       p.ID,
		Nickname: p.Nickname,
		Team:     p.Team,
		HP:       p.HP,
		Score:    p.Score,
		Local:    local,
	})
	components.Pose.SetValue(avatar, components.PoseData{
		Target:     p.Position,
		TargetYaw:  p.Rotation,
		Display:    p.Position,
		DisplayYaw: p.Rotation,
	})

	x, y, w, h := SpaceRect(arenaData(ecs), p.Position, cfg.Avatar.Radius*2, cfg.Avatar.Radius*2)
	obj := resolv.NewObject(x, y, w, h, tags.ResolvAvatar)
	obj.Data = avatar
	components.Object.SetValue(avatar, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	// Flash is permanently attached to avoid archetype thrashing
	components.Flash.SetValue(avatar, components.FlashData{})

	return avatar
}
