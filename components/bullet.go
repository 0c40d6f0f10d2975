package components

import (
	"time"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// BulletData is a locally simulated bullet. Position is derived from Origin,
// Direction and age; nothing about it is synchronized after spawn.
type BulletData struct {
	ID        string
	OwnerID   string
	Origin    gamemath.Vec3
	Direction gamemath.Vec3
	Position  gamemath.Vec3
	SpawnedAt time.Time
	Local     bool // fired by this client; only these report hits
}

var Bullet = donburi.NewComponentType[BulletData]()
