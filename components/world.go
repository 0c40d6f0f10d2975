package components

import (
	"time"

	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/yohamta/donburi"
)

// ClockData is the presentation clock, advanced once per scene update.
type ClockData struct {
	Now time.Time
	Dt  float64 // seconds since the previous update
}

var Clock = donburi.NewComponentType[ClockData]()

type ArenaData struct {
	*leveldata.Arena
	SpaceScale float64 // world units to space units
}

var Arena = donburi.NewComponentType[ArenaData]()
