package main

import (
	"context"
	"log"
	"maps"
	"math/rand"
	"slices"
	"sync"
	"time"
)

const (
	TickInterval = 33 * time.Millisecond
	nominalTick  = 33.0 // ms per tick at which dt == 1
	CameraFOV    = 1.5
	logEvery     = 100 // ticks between arena cycle log lines
)

// ids are pre-incremented, so the first one handed out is 4
const firstID ID = 3

// Lifecycle event types reported to the EventRecorder
const (
	EvtConnect = "connect"
	EvtSpawn   = "spawn"
	EvtKick    = "kick"
	EvtBot     = "bot"
)

// EventRecorder receives lifecycle events. Implementations must not block.
type EventRecorder interface {
	Track(evtType string, id ID, data string)
}

// Arena is the single authoritative world. Every method takes the write
// lock for the whole operation, so it behaves as a plain mutex.
type Arena struct {
	mu          sync.RWMutex
	width       uint32
	height      uint32
	nextID      ID
	entities    map[ID]Entity
	connections map[ID]*Outbox
	tick        uint64
	lastUpdate  time.Time
	spatial     *SpatialIndex
	candidates  []SpatialRecord
	clock       func() time.Time
	rng         *rand.Rand
	events      EventRecorder
}

// NewArena creates an empty arena with fixed world bounds
func NewArena(width, height uint32) *Arena {
	return &Arena{
		width:       width,
		height:      height,
		nextID:      firstID,
		entities:    make(map[ID]Entity),
		connections: make(map[ID]*Outbox),
		lastUpdate:  time.Now(),
		spatial:     NewSpatialIndex(float32(width), float32(height)),
		clock:       time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRecorder installs the lifecycle event sink
func (a *Arena) SetRecorder(r EventRecorder) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = r
}

func (a *Arena) track(evtType string, id ID, data string) {
	if a.events != nil {
		a.events.Track(evtType, id, data)
	}
}

// Run ticks the arena until ctx is cancelled
func (a *Arena) Run(ctx context.Context, interval time.Duration) error {
	a.mu.Lock()
	a.lastUpdate = a.clock()
	a.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Update()
		case <-ctx.Done():
			return nil
		}
	}
}

// NewConnection registers an outbox and queues its Identifier. The send
// happens under the lock so no census can overtake it.
func (a *Arena) NewConnection(out *Outbox) ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.allocID()
	a.connections[id] = out
	_ = out.SendPacket(Identifier(id))
	a.track(EvtConnect, id, "")
	return id
}

// PlayerSpawn creates a tank for a connected, not yet spawned id. It returns
// false without side effects when id is unknown or already spawned, and
// false after kicking when the Joining packet cannot be delivered.
func (a *Arena) PlayerSpawn(id ID, name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	out, ok := a.connections[id]
	if !ok {
		return false
	}
	if _, spawned := a.entities[id]; spawned {
		return false
	}
	if err := out.SendPacket(Joining{}); err != nil {
		a.kick(id)
		return false
	}

	a.addEntity(NewPlayerTank(id, name, Vec2{}, out))
	a.track(EvtSpawn, id, name)
	return true
}

// Input routes a control snapshot to the entity with id, if it takes input
func (a *Arena) Input(id ID, in Input) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch e := a.entities[id].(type) {
	case *Tank:
		e.SetInput(in)
	}
}

// LevelUp raises a spawned tank's level by one
func (a *Arena) LevelUp(id ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch e := a.entities[id].(type) {
	case *Tank:
		e.SetLevel(e.Level() + 1)
		return true
	}
	return false
}

// KickConnection tears down a connection and its entity. It returns false
// and changes nothing when id is not registered.
func (a *Arena) KickConnection(id ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.kick(id)
}

func (a *Arena) kick(id ID) bool {
	out, ok := a.connections[id]
	if !ok {
		return false
	}
	// best effort, the peer may already be gone
	_ = out.Send(closeFrame)
	out.Close()

	delete(a.connections, id)
	a.deleteEntity(id)
	a.track(EvtKick, id, "")
	return true
}

func (a *Arena) addEntity(e Entity) {
	a.spatial.Insert(SpatialRecord{ID: e.ID(), Box: e.Box(), Radius: e.Radius()})
	a.entities[e.ID()] = e
}

// deleteEntity drops the entity and its index record. Callers keep the
// connection registry consistent.
func (a *Arena) deleteEntity(id ID) {
	delete(a.entities, id)
	a.spatial.Delete(id)
}

func (a *Arena) allocID() ID {
	a.nextID++
	return a.nextID
}

func (a *Arena) entityIDs() []ID {
	return slices.Sorted(maps.Keys(a.entities))
}

func (a *Arena) connectionIDs() []ID {
	return slices.Sorted(maps.Keys(a.connections))
}

// EntityCount returns the number of live entities
func (a *Arena) EntityCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entities)
}

// ConnectionCount returns the number of registered connections
func (a *Arena) ConnectionCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.connections)
}

// HasConnection reports whether id is registered
func (a *Arena) HasConnection(id ID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.connections[id]
	return ok
}

// Entity returns a copy of the state visible to clients for id
func (a *Arena) Entity(id ID) (EntityView, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.entities[id]
	if !ok {
		return EntityView{}, false
	}
	return viewOf(e), true
}

// Tick returns the number of completed ticks
func (a *Arena) Tick() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tick
}

// Size returns the world bounds
func (a *Arena) Size() (uint32, uint32) {
	return a.width, a.height
}

// EntityView is a detached snapshot of an entity
type EntityView struct {
	ID       ID
	Name     string
	Position Vec2
	Velocity Vec2
	Radius   float32
	Score    uint32
	Level    uint32
}

func viewOf(e Entity) EntityView {
	return EntityView{
		ID:       e.ID(),
		Name:     e.Name(),
		Position: e.Position(),
		Velocity: e.Velocity(),
		Radius:   e.Radius(),
		Score:    e.Score(),
		Level:    e.Level(),
	}
}

func (a *Arena) logf(format string, args ...any) {
	log.Printf("arena: "+format, args...)
}
