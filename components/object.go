package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space is the singleton collision space shared by walls, avatars and bullets.
var Space = donburi.NewComponentType[resolv.Space]()
