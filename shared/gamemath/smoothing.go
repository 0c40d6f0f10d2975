package gamemath

import "math"

// SmoothFactor returns the per-tick blend factor min(1, k*dt). Non-positive
// inputs yield 0 (no movement).
func SmoothFactor(k, dt float64) float64 {
	f := k * dt
	if f <= 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Smooth advances displayed toward target by the first-order filter
// displayed += (target - displayed) * min(1, k*dt).
func Smooth(displayed, target Vec3, k, dt float64) Vec3 {
	return displayed.Add(target.Sub(displayed).Scale(SmoothFactor(k, dt)))
}

// SmoothYaw is Smooth for a yaw angle in radians. It travels along the
// shortest arc, which is what slerp does for a rotation about a single axis.
// The result is wrapped to (-pi, pi].
func SmoothYaw(displayed, target, k, dt float64) float64 {
	return WrapAngle(displayed + AngleDelta(displayed, target)*SmoothFactor(k, dt))
}

// AngleDelta returns the signed shortest rotation from a to b, in (-pi, pi].
func AngleDelta(a, b float64) float64 {
	return WrapAngle(b - a)
}

// WrapAngle maps an angle to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Travel returns the position of a projectile fired from origin along dir at
// speed after age seconds. dir is expected to be a unit vector.
func Travel(origin, dir Vec3, speed, age float64) Vec3 {
	return origin.Add(dir.Scale(speed * age))
}
