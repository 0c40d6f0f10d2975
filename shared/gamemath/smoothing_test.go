package gamemath

import (
	"math"
	"testing"
)

func TestSmoothFactor(t *testing.T) {
	tests := []struct {
		k, dt, want float64
	}{
		{10, 1.0 / 60, 10.0 / 60},
		{10, 0.5, 1},
		{10, 0, 0},
		{0, 0.016, 0},
		{10, -1, 0},
	}
	for _, tt := range tests {
		if got := SmoothFactor(tt.k, tt.dt); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("SmoothFactor(%v, %v) = %v, want %v", tt.k, tt.dt, got, tt.want)
		}
	}
}

func TestSmoothDecaysGeometricallyWithoutOvershoot(t *testing.T) {
	const k, dt = 10.0, 1.0 / 60
	target := Vec3{X: 10, Y: 1, Z: -4}
	displayed := Vec3{}
	prevErr := Dist(displayed, target)
	factor := 1 - k*dt

	ticks := 0
	for prevErr > 1e-3 {
		displayed = Smooth(displayed, target, k, dt)
		err := Dist(displayed, target)
		if math.Abs(err-prevErr*factor) > 1e-9 {
			t.Fatalf("tick %d: error %v, want %v", ticks, err, prevErr*factor)
		}
		if displayed.X > target.X || displayed.Z < target.Z {
			t.Fatalf("tick %d: overshoot, displayed=%+v target=%+v", ticks, displayed, target)
		}
		prevErr = err
		ticks++
		if ticks > 100 {
			t.Fatalf("did not converge within 100 ticks, error %v", err)
		}
	}
}

func TestSmoothLargeStepSnaps(t *testing.T) {
	got := Smooth(Vec3{}, Vec3{X: 3}, 10, 0.25)
	if got != (Vec3{X: 3}) {
		t.Fatalf("Smooth with k*dt >= 1 = %+v, want target", got)
	}
}

func TestSmoothYawTakesShortestArc(t *testing.T) {
	from := math.Pi - 0.1
	to := -math.Pi + 0.1
	got := SmoothYaw(from, to, 10, 0.05)
	// Halfway along the 0.2 rad arc that crosses +pi.
	if math.Abs(AngleDelta(got, math.Pi)) > 1e-9 {
		t.Fatalf("SmoothYaw = %v, want pi", got)
	}
}

func TestSmoothYawConverges(t *testing.T) {
	yaw := 0.0
	target := 2.5
	for i := 0; i < 60; i++ {
		yaw = SmoothYaw(yaw, target, 10, 1.0/60)
		if yaw > target+1e-12 {
			t.Fatalf("tick %d: overshoot %v > %v", i, yaw, target)
		}
	}
	if math.Abs(yaw-target) > 1e-3 {
		t.Fatalf("yaw = %v after 1s, want ~%v", yaw, target)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalized(t *testing.T) {
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Fatalf("zero Normalized = %+v", got)
	}
	if got := (Vec3{X: 3, Z: 4}).Normalized(); math.Abs(got.Len()-1) > 1e-12 {
		t.Fatalf("Normalized length = %v", got.Len())
	}
}

func TestTravel(t *testing.T) {
	got := Travel(Vec3{Y: 1}, Vec3{X: 1}, 30, 0.5)
	if got != (Vec3{X: 15, Y: 1}) {
		t.Fatalf("Travel = %+v", got)
	}
}
