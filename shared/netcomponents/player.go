// Package netcomponents declares the donburi component types that hold
// networked state on the relay.
package netcomponents

import (
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/yohamta/donburi"
)

// NetPlayerData is one player record in the session store.
type NetPlayerData struct {
	messages.Player
	JoinSeq uint64 // order of the most recent join, for stable listings
}

var NetPlayer = donburi.NewComponentType[NetPlayerData]()
