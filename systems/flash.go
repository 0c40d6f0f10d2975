package systems

import (
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// StartFlash restarts the hit flash on the avatar of targetID. It reports
// false when no avatar is shown for that id.
func StartFlash(e *ecs.ECS, targetID string) bool {
	found := false
	components.Avatar.Each(e.World, func(entry *donburi.Entry) {
		if found || components.Avatar.Get(entry).ID != targetID {
			return
		}
		found = true
		components.Flash.SetValue(entry, components.FlashData{
			Tween: gween.New(1, 0, cfg.Avatar.FlashDuration, ease.OutQuad),
			Value: 1,
		})
	})
	return found
}

func UpdateFlash(e *ecs.ECS) {
	dt := float32(clock(e).Dt)
	components.Flash.Each(e.World, func(entry *donburi.Entry) {
		f := components.Flash.Get(entry)
		if f.Tween == nil {
			return
		}
		v, done := f.Tween.Update(dt)
		f.Value = v
		if done {
			f.Tween = nil
			f.Value = 0
		}
	})
}
