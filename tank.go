package main

import "math"

const (
	TankRadius    = 100.0
	TankMass      = 1.0
	TankDrag      = 0.9 // velocity retained per tick
	ScorePerLevel = 600
)

// TankKind distinguishes player-controlled tanks from bots
type TankKind int

const (
	TankPlayer TankKind = iota
	TankBot
)

// Input is the latest control snapshot sent by a client
type Input struct {
	Left, Right, Up, Down bool
	Angle                 float32 // radians, unconstrained
	LMB                   bool
	MX, MY                int16
	RMB                   bool
}

// Direction returns the unit-per-flag acceleration the input asks for.
// Opposing flags cancel; screen y grows downward.
func (in Input) Direction() Vec2 {
	var d Vec2
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	if in.Up {
		d.Y--
	}
	if in.Down {
		d.Y++
	}
	return d
}

// Tank is the player or bot controlled entity
type Tank struct {
	body
	kind  TankKind
	input Input
	out   *Outbox // nil for bots
}

func newTank(id ID, name string, pos Vec2, kind TankKind, out *Outbox) *Tank {
	return &Tank{
		body: body{
			id:       id,
			position: pos,
			radius:   TankRadius,
			mass:     TankMass,
			name:     name,
			color:    ColorBlue,
			alpha:    1,
			health:   1,
			flags:    RenderFlags{ShowName: true, ShowHealth: true},
		},
		kind: kind,
		out:  out,
	}
}

// NewPlayerTank creates a tank that publishes to a connection's outbox
func NewPlayerTank(id ID, name string, pos Vec2, out *Outbox) *Tank {
	return newTank(id, name, pos, TankPlayer, out)
}

// NewBotTank creates a tank with no outbox
func NewBotTank(id ID, name string, pos Vec2) *Tank {
	return newTank(id, name, pos, TankBot, nil)
}

func (t *Tank) entity() {}

func (t *Tank) Kind() TankKind {
	return t.kind
}

// Input returns the stored control snapshot
func (t *Tank) Input() Input {
	return t.input
}

// SetInput replaces the stored snapshot wholesale
func (t *Tank) SetInput(in Input) {
	t.input = in
	t.angle = in.Angle
}

// Update integrates input, moves by velocity*dt and applies drag
func (t *Tank) Update(dt float32) (Box, bool) {
	prevPos, prevRadius := t.position, t.radius

	t.velocity = t.velocity.Add(t.input.Direction())
	t.position = t.position.Add(t.velocity.Scale(dt))
	t.velocity = t.velocity.Scale(TankDrag)

	if t.position.sameBits(prevPos) && math.Float32bits(t.radius) == math.Float32bits(prevRadius) {
		return Box{}, false
	}
	return t.Box(), true
}

// SendPacket publishes a packet to the owning connection. Bots have no
// connection and silently drop it.
func (t *Tank) SendPacket(p ClientboundPacket) error {
	if t.out == nil {
		return nil
	}
	return t.out.SendPacket(p)
}

// Level is derived from score; the remainder is discarded
func (t *Tank) Level() uint32 {
	return t.score / ScorePerLevel
}

// SetLevel overwrites score with the minimum score for that level
func (t *Tank) SetLevel(level uint32) {
	t.score = level * ScorePerLevel
}
