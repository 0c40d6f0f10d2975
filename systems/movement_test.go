package systems

import (
	"testing"
	"time"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
)

func TestLocalBodyBlockedByWall(t *testing.T) {
	arena := leveldata.OpenArena(40, 40)
	arena.Walls = []leveldata.Rect{{X: 2, Z: -5, W: 1, D: 10}}
	e, _ := newTestECS(t, arena)

	b := NewLocalBody(gamemath.Vec3{Y: 1})
	for i := 0; i < 60; i++ {
		b.Step(e, Input{MoveX: 1}, 1.0/60)
	}
	if b.Position.X > 1.5 || b.Position.X < 1.3 {
		t.Fatalf("x = %v, want just short of the wall at 1.5", b.Position.X)
	}

	// Sliding along the wall still works.
	z := b.Position.Z
	for i := 0; i < 10; i++ {
		b.Step(e, Input{MoveX: 1, MoveZ: 1}, 1.0/60)
	}
	if b.Position.Z <= z {
		t.Fatalf("z did not advance along the wall")
	}
}

func TestLocalBodyClampedToArena(t *testing.T) {
	e, _ := newTestECS(t, leveldata.OpenArena(40, 40))
	b := NewLocalBody(gamemath.Vec3{Y: 1})
	for i := 0; i < 600; i++ {
		b.Step(e, Input{MoveX: -1, MoveZ: -1}, 1.0/60)
	}
	if b.Position.X != -19.5 || b.Position.Z != -19.5 {
		t.Fatalf("position = %+v, want corner at -19.5", b.Position)
	}
}

func TestLocalBodyDiagonalIsNotFaster(t *testing.T) {
	e, _ := newTestECS(t, leveldata.OpenArena(40, 40))
	b := NewLocalBody(gamemath.Vec3{Y: 1})
	b.Step(e, Input{MoveX: 1, MoveZ: 1}, 0.1)
	if d := gamemath.Dist(b.Position, gamemath.Vec3{Y: 1}); d > 0.6+1e-9 {
		t.Fatalf("moved %v in 0.1s, max is 0.6", d)
	}
}

func TestLocalBodyJumpLands(t *testing.T) {
	e, _ := newTestECS(t, leveldata.OpenArena(40, 40))
	b := NewLocalBody(gamemath.Vec3{Y: 1})
	b.Step(e, Input{Jump: true, Yaw: 7}, 1.0/60)
	if b.OnGround || b.Position.Y <= 1 {
		t.Fatalf("did not leave the ground: %+v", b)
	}
	if b.Yaw > 3.2 || b.Yaw < -3.2 {
		t.Fatalf("yaw not wrapped: %v", b.Yaw)
	}
	for i := 0; i < int(2*time.Second/(time.Second/60)); i++ {
		b.Step(e, Input{}, 1.0/60)
	}
	if !b.OnGround || b.Position.Y != 1 {
		t.Fatalf("did not land: %+v", b)
	}
}
