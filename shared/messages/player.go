package messages

import "github.com/automoto/arena-mp/shared/gamemath"

// Team labels, assigned alternately by join order.
type Team string

const (
	TeamBlue Team = "blue"
	TeamRed  Team = "red"
)

// TeamForCount returns the team for a player joining when count players are
// already present.
func TeamForCount(count int) Team {
	if count%2 == 0 {
		return TeamBlue
	}
	return TeamRed
}

// MaxHP is the health of a freshly joined player.
const MaxHP = 100

// Player is the networked player record.
type Player struct {
	ID       string        `json:"id"`
	Nickname string        `json:"nickname"`
	Position gamemath.Vec3 `json:"position"`
	Rotation float64       `json:"rotation"`
	HP       int           `json:"hp"`
	IsDead   bool          `json:"isDead"`
	Score    int           `json:"score"`
	Team     Team          `json:"team"`
}

// CloneSync returns a Sync holding a copy of players.
func CloneSync(players map[string]Player) Sync {
	out := make(map[string]Player, len(players))
	for id, p := range players {
		out[id] = p
	}
	return Sync{Players: out}
}
