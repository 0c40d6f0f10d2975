package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FlashData tracks the hit flash on an avatar. Value runs from 1 down to 0
// while Tween is active.
type FlashData struct {
	Tween *gween.Tween
	Value float32
}

var Flash = donburi.NewComponentType[FlashData]()
