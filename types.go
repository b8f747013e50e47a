package main

import "math"

// ID is shared by a connection and the entity spawned for it
type ID uint32

// Color is the client palette index sent on the wire as a u8
type Color uint8

const (
	ColorTrueWhite Color = iota
	ColorTrueBlack
	ColorWhite
	ColorBlack
	ColorGrid
	ColorDarkGrid
	ColorBlue
	ColorGrey
	ColorBorderGrey
	ColorRed
	ColorOrange
	ColorGreen
	ColorYellow
	ColorTriangleRed
	ColorPentagonBlue
	ColorLightGreen
	ColorTrueRed
	ColorDarkGrey
	ColorCohortBlue
	ColorChargingCyan

	colorCount
)

// Vec2 is a 2D float32 vector
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Distance returns the euclidean distance between two points
func (v Vec2) Distance(o Vec2) float32 {
	dx := float64(o.X - v.X)
	dy := float64(o.Y - v.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// sameBits reports whether two vectors are bit-for-bit identical
func (v Vec2) sameBits(o Vec2) bool {
	return math.Float32bits(v.X) == math.Float32bits(o.X) &&
		math.Float32bits(v.Y) == math.Float32bits(o.Y)
}

// Box is an axis-aligned bounding box anchored at its top-left corner
type Box struct {
	X, Y, W, H float32
}

// CircleBox returns the box enclosing a circle
func CircleBox(center Vec2, radius float32) Box {
	return Box{
		X: center.X - radius,
		Y: center.Y - radius,
		W: radius * 2,
		H: radius * 2,
	}
}
