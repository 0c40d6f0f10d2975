package scenes

import (
	"math"
	"math/rand/v2"
	"time"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/systems"
)

// ScriptedInput plays the input collaborator for the headless client: it
// patrols the arena's spawn points and shoots at the nearest visible enemy.
type ScriptedInput struct {
	tuning    cfg.BotDifficultyConfig
	waypoints []gamemath.Vec3
	next      int
	lastShot  time.Time
	rng       *rand.Rand
}

func NewScriptedInput(arena *leveldata.Arena, difficulty cfg.BotDifficulty, seed uint64) *ScriptedInput {
	si := &ScriptedInput{
		tuning: cfg.Bot.Difficulties[difficulty],
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	if arena != nil {
		for _, sp := range arena.Spawns {
			si.waypoints = append(si.waypoints, gamemath.Vec3{X: sp.X, Y: 1, Z: sp.Z})
		}
	}
	if len(si.waypoints) == 0 {
		r := cfg.Bot.PatrolRadius
		for i := 0; i < 8; i++ {
			a := float64(i) * math.Pi / 4
			si.waypoints = append(si.waypoints, gamemath.Vec3{X: r * math.Sin(a), Y: 1, Z: r * math.Cos(a)})
		}
	}
	return si
}

// Next returns the input for this tick given the latest view.
func (si *ScriptedInput) Next(v View, pos gamemath.Vec3, now time.Time) systems.Input {
	var in systems.Input

	wp := si.waypoints[si.next]
	if gamemath.Dist(flat(pos), flat(wp)) < cfg.Bot.WaypointTolerance {
		si.next = (si.next + 1) % len(si.waypoints)
		wp = si.waypoints[si.next]
	}
	move := flat(wp).Sub(flat(pos)).Normalized()
	in.MoveX, in.MoveZ = move.X, move.Z
	in.Yaw = math.Atan2(move.X, move.Z)

	target, ok := si.nearestEnemy(v, pos)
	if !ok {
		return in
	}
	aim := target.Sub(pos)
	in.Yaw = math.Atan2(aim.X, aim.Z) + (si.rng.Float64()*2-1)*si.tuning.AimJitter
	if now.Sub(si.lastShot) >= si.tuning.ShootInterval {
		in.Shoot = true
		si.lastShot = now
	}
	return in
}

func (si *ScriptedInput) nearestEnemy(v View, pos gamemath.Vec3) (gamemath.Vec3, bool) {
	best, found := si.tuning.AimRange, false
	var out gamemath.Vec3
	for _, a := range v.Avatars {
		if a.Local || (v.Joined && a.Team == v.Local.Team) {
			continue
		}
		if d := gamemath.Dist(flat(a.Position), flat(pos)); d < best {
			best, out, found = d, a.Position, true
		}
	}
	return out, found
}

func flat(v gamemath.Vec3) gamemath.Vec3 {
	return gamemath.Vec3{X: v.X, Z: v.Z}
}
