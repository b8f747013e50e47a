package main

// RenderFlags are per-entity client rendering hints
type RenderFlags struct {
	ShowName       bool
	ShowHealth     bool
	BarrelFlash    bool
	ShieldFlash    bool
	CanCrossBorder bool
}

// Entity is any simulated object owned by the arena. The set of
// implementations is closed: the unexported marker keeps other packages
// from adding variants, so a type switch over the variants is exhaustive.
type Entity interface {
	ID() ID

	Position() Vec2
	SetPosition(Vec2)
	Velocity() Vec2
	SetVelocity(Vec2)
	Radius() float32
	SetRadius(float32)
	Mass() float32
	SetMass(float32)

	Angle() float32
	Name() string
	Score() uint32
	Level() uint32
	Class() uint16
	Color() Color
	Alpha() float32
	Health() float32
	Flags() RenderFlags

	// Box is the current bounding box
	Box() Box
	// Update advances the entity by dt ticks. It returns the new bounding
	// box and true only when position or radius changed.
	Update(dt float32) (Box, bool)

	entity()
}

// body holds the state every entity variant shares
type body struct {
	id       ID
	position Vec2
	velocity Vec2
	radius   float32
	mass     float32
	angle    float32
	name     string
	score    uint32
	class    uint16
	color    Color
	alpha    float32
	health   float32
	flags    RenderFlags
}

func (b *body) ID() ID { return b.id }
func (b *body) Position() Vec2 { return b.position }
func (b *body) SetPosition(p Vec2) { b.position = p }
func (b *body) Velocity() Vec2 { return b.velocity }
func (b *body) SetVelocity(v Vec2) { b.velocity = v }
func (b *body) Radius() float32 { return b.radius }
func (b *body) SetRadius(r float32) { b.radius = r }
func (b *body) Mass() float32 { return b.mass }
func (b *body) SetMass(m float32) { b.mass = m }
func (b *body) Angle() float32 { return b.angle }
func (b *body) Name() string { return b.name }
func (b *body) Class() uint16 { return b.class }
func (b *body) Color() Color { return b.color }
func (b *body) Alpha() float32 { return b.alpha }
func (b *body) Health() float32 { return b.health }
func (b *body) Flags() RenderFlags { return b.flags }
func (b *body) Box() Box { return CircleBox(b.position, b.radius) }
func (b *body) Score() uint32 { return b.score }
func (b *body) SetScore(score uint32) { b.score = score }
func (b *body) SetColor(c Color) { b.color = c }
