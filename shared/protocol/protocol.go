package protocol

import (
	"time"
	"unicode/utf8"

	"github.com/automoto/arena-mp/shared/gamemath"
)

// Shared tuning. Every observer must agree on these for bullets to look the
// same everywhere, since velocity and damage are not networked.
const (
	UpdateHz        = 30
	BulletSpeed     = 30.0 // world units per second
	BulletTTL       = 2 * time.Second
	HitDamage       = 10
	ConvergenceRate = 10.0
	MaxNicknameLen  = 32 // runes
)

// SpawnPosition is where every player (re)joins.
var SpawnPosition = gamemath.Vec3{X: 0, Y: 1, Z: 0}

// ClampNickname cuts nickname to MaxNicknameLen runes.
func ClampNickname(nickname string) string {
	if utf8.RuneCountInString(nickname) <= MaxNicknameLen {
		return nickname
	}
	return string([]rune(nickname)[:MaxNicknameLen])
}
