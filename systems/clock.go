package systems

import (
	"github.com/automoto/arena-mp/components"
	"github.com/yohamta/donburi/ecs"
)

func clock(ecs *ecs.ECS) *components.ClockData {
	e, ok := components.Clock.First(ecs.World)
	if !ok {
		panic("systems: clock not created")
	}
	return components.Clock.Get(e)
}

func arena(ecs *ecs.ECS) *components.ArenaData {
	e, ok := components.Arena.First(ecs.World)
	if !ok {
		panic("systems: arena not created")
	}
	return components.Arena.Get(e)
}
