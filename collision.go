package main

import "math"

// CollisionPush is the speed an overlapping entity gains away from the other
const CollisionPush = 0.5

// CheckCollision reports whether two circles overlap. Touching is not overlap.
func CheckCollision(p1 Vec2, r1 float32, p2 Vec2, r2 float32) bool {
	return p1.Distance(p2) < r1+r2
}

// pushAway returns the impulse that moves pos away from other
func pushAway(pos, other Vec2) Vec2 {
	angle := math.Atan2(float64(other.Y-pos.Y), float64(other.X-pos.X))
	push := Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))}
	return push.Scale(-CollisionPush)
}
