package tags

import "github.com/yohamta/donburi"

var (
	Avatar = donburi.NewTag().SetName("Avatar")
	Bullet = donburi.NewTag().SetName("Bullet")
	Wall   = donburi.NewTag().SetName("Wall")
)

// Resolv tags for collision
const (
	ResolvSolid  = "solid"
	ResolvAvatar = "avatar"
	ResolvBullet = "bullet"
)
