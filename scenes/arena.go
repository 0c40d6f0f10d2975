package scenes

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/automoto/arena-mp/systems"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// AvatarView is one player as the render collaborator should draw it.
type AvatarView struct {
	ID       string
	Nickname string
	Team     messages.Team
	HP       int
	Position gamemath.Vec3
	Yaw      float64
	Flash    float32 // 1 right after a hit, fading to 0
	Local    bool
}

type BulletView struct {
	ID       string
	OwnerID  string
	Position gamemath.Vec3
}

// View is a read-only picture of the arena for one render tick.
type View struct {
	Local      messages.Player
	Joined     bool
	Avatars    []AvatarView
	Bullets    []BulletView
	Scoreboard []messages.Player // highest score first
}

// ArenaScene drives the client presentation world: it feeds network events
// into the ECS, runs interpolation and bullets each tick, and turns local
// input into predicted poses and shots.
type ArenaScene struct {
	ecs  *ecs.ECS
	rec  *network.Reconciler
	body *systems.LocalBody

	clockEntry *donburi.Entry
}

func NewArenaScene(rec *network.Reconciler, arena *leveldata.Arena, start time.Time) *ArenaScene {
	if arena == nil {
		arena = leveldata.OpenArena(cfg.Arena.Width, cfg.Arena.Depth)
	}
	s := &ArenaScene{
		ecs:  ecs.NewECS(donburi.NewWorld()),
		rec:  rec,
		body: systems.NewLocalBody(protocol.SpawnPosition),
	}

	s.clockEntry = archetypes.Clock.Spawn(s.ecs)
	components.Clock.SetValue(s.clockEntry, components.ClockData{Now: start})
	factory.CreateSpace(s.ecs, arena, cfg.Arena.SpaceScale, cfg.Arena.CellSize)

	mirror := rec.Mirror()
	s.ecs.AddSystem(systems.NewInterpSystem(mirror.Snapshot, mirror.LocalID))
	s.ecs.AddSystem(systems.UpdateBullets)
	s.ecs.AddSystem(systems.NewHitSystem(rec.ReportHit))
	s.ecs.AddSystem(systems.UpdateFlash)
	return s
}

// Join asks the relay for a player and puts the local body at spawn.
func (s *ArenaScene) Join(nickname string) (string, error) {
	s.body.Reset(protocol.SpawnPosition)
	return s.rec.Join(nickname)
}

// ApplyInput moves the local body and fires if requested. Input is ignored
// while the local player is dead.
func (s *ArenaScene) ApplyInput(in systems.Input, dt time.Duration) error {
	if local, ok := s.rec.Mirror().Local(); ok && local.IsDead {
		return nil
	}
	s.body.Step(s.ecs, in, dt.Seconds())
	s.rec.SetLocalPose(s.body.Position, s.body.Yaw)

	if !in.Shoot {
		return nil
	}
	dir := gamemath.Vec3{X: math.Sin(s.body.Yaw), Z: math.Cos(s.body.Yaw)}
	_, err := s.rec.Shoot(s.body.Position, dir)
	return err
}

// Update advances the presentation world by dt.
func (s *ArenaScene) Update(dt time.Duration) {
	c := components.Clock.Get(s.clockEntry)

	// Bullet age is measured on the scene clock only.
	for _, b := range s.rec.DrainBullets() {
		b.SpawnedAt = c.Now
		factory.CreateBullet(s.ecs, b)
	}

	c.Now = c.Now.Add(dt)
	c.Dt = dt.Seconds()

	s.ecs.Update()

	for _, h := range s.rec.DrainHits() {
		systems.StartFlash(s.ecs, h.TargetID)
	}
}

// View returns the current arena state. The result shares nothing with the
// scene and may be kept by the caller.
func (s *ArenaScene) View() View {
	var v View
	v.Local, v.Joined = s.rec.Mirror().Local()

	components.Avatar.Each(s.ecs.World, func(entry *donburi.Entry) {
		a := components.Avatar.Get(entry)
		pose := components.Pose.Get(entry)
		v.Avatars = append(v.Avatars, AvatarView{
			ID:       a.ID,
			Nickname: a.Nickname,
			Team:     a.Team,
			HP:       a.HP,
			Position: pose.Display,
			Yaw:      pose.DisplayYaw,
			Flash:    components.Flash.Get(entry).Value,
			Local:    a.Local,
		})
	})
	slices.SortFunc(v.Avatars, func(a, b AvatarView) int { return cmp.Compare(a.ID, b.ID) })

	components.Bullet.Each(s.ecs.World, func(entry *donburi.Entry) {
		b := components.Bullet.Get(entry)
		v.Bullets = append(v.Bullets, BulletView{ID: b.ID, OwnerID: b.OwnerID, Position: b.Position})
	})
	slices.SortFunc(v.Bullets, func(a, b BulletView) int { return cmp.Compare(a.ID, b.ID) })

	for _, p := range s.rec.Mirror().Snapshot() {
		v.Scoreboard = append(v.Scoreboard, p)
	}
	slices.SortFunc(v.Scoreboard, func(a, b messages.Player) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Nickname, b.Nickname); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return v
}

// Body exposes the local kinematic body.
func (s *ArenaScene) Body() *systems.LocalBody {
	return s.body
}
