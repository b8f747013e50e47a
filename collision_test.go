package main

import "testing"

func TestCheckCollision(t *testing.T) {
	// Overlapping circles
	if !CheckCollision(Vec2{}, 10, Vec2{X: 15}, 10) {
		t.Error("circles should collide (overlapping)")
	}

	// Touching circles do not collide
	if CheckCollision(Vec2{}, 10, Vec2{X: 20}, 10) {
		t.Error("touching circles should not collide")
	}

	// Non-overlapping circles
	if CheckCollision(Vec2{}, 10, Vec2{X: 25}, 10) {
		t.Error("circles should not collide")
	}

	// Same position
	if !CheckCollision(Vec2{X: 5, Y: 5}, 1, Vec2{X: 5, Y: 5}, 1) {
		t.Error("same position should collide")
	}
}

func TestPushAwayDirection(t *testing.T) {
	pos := Vec2{X: 10, Y: 10}
	others := []Vec2{{X: 60, Y: 10}, {X: 10, Y: -30}, {X: -5, Y: 25}}
	for _, other := range others {
		push := pushAway(pos, other)
		if push.Dot(other.Sub(pos)) >= 0 {
			t.Errorf("push %v does not point away from %v", push, other)
		}
		if d := push.Distance(Vec2{}); d < 0.49 || d > 0.51 {
			t.Errorf("push magnitude = %v, want 0.5", d)
		}
	}
}

func TestPushAwayCoincident(t *testing.T) {
	// atan2(0, 0) is 0, so coincident circles are pushed toward -x
	push := pushAway(Vec2{X: 3, Y: 3}, Vec2{X: 3, Y: 3})
	if push.X >= 0 {
		t.Errorf("push = %v", push)
	}
}
