package systems

import (
	"math"

	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/ecs"
)

const resolvBody = "body"

// Input is one tick of intent from the input collaborator.
type Input struct {
	MoveX, MoveZ float64 // movement axes, magnitude clamped to 1
	Yaw          float64 // facing, radians
	Shoot        bool
	Jump         bool
}

// LocalBody is a minimal kinematic body for the local player: planar
// movement blocked by arena walls plus a jump over a flat floor. It stands in
// for a full physics engine and produces the predicted pose.
type LocalBody struct {
	Position gamemath.Vec3
	Yaw      float64
	VelY     float64
	OnGround bool

	floor float64
	obj   *resolv.Object
}

func NewLocalBody(spawn gamemath.Vec3) *LocalBody {
	return &LocalBody{Position: spawn, OnGround: true, floor: spawn.Y}
}

// Reset puts the body back at spawn.
func (b *LocalBody) Reset(spawn gamemath.Vec3) {
	b.Position, b.Yaw, b.VelY, b.OnGround, b.floor = spawn, 0, 0, true, spawn.Y
}

// Step applies in over dt seconds.
func (b *LocalBody) Step(e *ecs.ECS, in Input, dt float64) {
	b.Yaw = gamemath.WrapAngle(in.Yaw)

	move := gamemath.Vec3{X: in.MoveX, Z: in.MoveZ}
	if l := move.Len(); l > 1 {
		move = move.Scale(1 / l)
	}
	step := move.Scale(cfg.Avatar.MoveSpeed * dt)
	b.tryMove(e, step.X, 0)
	b.tryMove(e, 0, step.Z)

	if in.Jump && b.OnGround {
		b.VelY = cfg.Avatar.JumpSpeed
		b.OnGround = false
	}
	if !b.OnGround {
		b.VelY -= cfg.Avatar.Gravity * dt
		b.Position.Y += b.VelY * dt
		if b.Position.Y <= b.floor {
			b.Position.Y, b.VelY, b.OnGround = b.floor, 0, true
		}
	}
}

func (b *LocalBody) tryMove(e *ecs.ECS, dx, dz float64) {
	if dx == 0 && dz == 0 {
		return
	}
	ad := arena(e)
	r := cfg.Avatar.Radius
	next := b.Position
	next.X = math.Max(ad.MinX()+r, math.Min(ad.MinX()+ad.Width-r, next.X+dx))
	next.Z = math.Max(ad.MinZ()+r, math.Min(ad.MinZ()+ad.Depth-r, next.Z+dz))

	obj := b.collider(e)
	if obj == nil {
		b.Position = next
		return
	}
	s := ad.SpaceScale
	obj.X = (b.Position.X-r-ad.MinX())*s
	obj.Y = (b.Position.Z-r-ad.MinZ())*s
	mx, my := (next.X-b.Position.X)*s, (next.Z-b.Position.Z)*s
	if col := obj.Check(mx, my, tags.ResolvSolid); col != nil {
		for _, wall := range col.Objects {
			if rectsOverlap(obj.X+mx, obj.Y+my, obj.W, obj.H, wall) {
				return
			}
		}
	}
	b.Position = next
	obj.X += mx
	obj.Y += my
	obj.Update()
}

// collider lazily adds the body's footprint to the arena space.
func (b *LocalBody) collider(e *ecs.ECS) *resolv.Object {
	if b.obj != nil {
		return b.obj
	}
	spaceEntry, ok := components.Space.First(e.World)
	if !ok {
		return nil
	}
	ad := arena(e)
	s, d := ad.SpaceScale, cfg.Avatar.Radius*2
	b.obj = resolv.NewObject(
		(b.Position.X-d/2-ad.MinX())*s,
		(b.Position.Z-d/2-ad.MinZ())*s,
		d*s, d*s, resolvBody,
	)
	components.Space.Get(spaceEntry).Add(b.obj)
	return b.obj
}

func rectsOverlap(x, y, w, h float64, o *resolv.Object) bool {
	return x < o.X+o.W && x+w > o.X && y < o.Y+o.H && y+h > o.Y
}
