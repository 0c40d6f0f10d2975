package components

import (
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/yohamta/donburi"
)

// AvatarData mirrors the displayable fields of one player.
type AvatarData struct {
	ID       string
	Nickname string
	Team     messages.Team
	HP       int
	Score    int
	Local    bool // driven by local prediction, never smoothed
}

var Avatar = donburi.NewComponentType[AvatarData]()

// PoseData stores interpolation state for smooth rendering of a remote
// player between network updates.
type PoseData struct {
	Target     gamemath.Vec3
	TargetYaw  float64
	Display    gamemath.Vec3
	DisplayYaw float64
}

var Pose = donburi.NewComponentType[PoseData]()
