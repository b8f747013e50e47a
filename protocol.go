package main

import (
	"errors"
	"math"
)

// ErrNotImplemented is returned for packet kinds reserved for future work
var ErrNotImplemented = errors.New("packet kind not implemented")

// Server -> Client packet tags. The values are part of the wire contract.
const (
	TagRoomInfo         byte = 0x0
	TagIdentifier       byte = 0x1
	TagCensus           byte = 0x2
	TagJoining          byte = 0x3
	TagCameraUpdate     byte = 0x4
	TagCmdOutput        byte = 0x5
	TagEntityTypes      byte = 0x6
	TagDeath            byte = 0x7
	TagMessage          byte = 0x8
	TagTankUpgrade      byte = 0x9
	TagUpgradeReset     byte = 0xA
	TagLeaderBoard      byte = 0xB
	TagKill             byte = 0xC
	TagSkill            byte = 0xD
	TagAccount          byte = 0xE
	TagDominationColors byte = 0xF
	TagAudio            byte = 0x10
	TagGameEvent        byte = 0x11
)

// ClientboundPacket is any message the server sends to a client
type ClientboundPacket interface {
	MarshalBinary() ([]byte, error)
}

// RoomInfo describes the arena a client just connected to
type RoomInfo struct {
	Width           uint16
	Height          uint16
	Mode            string
	AccountsEnabled bool
	BorderStyle     uint16
}

func (p RoomInfo) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagRoomInfo)
	w.PutU16(p.Width)
	w.PutU16(p.Height)
	w.PutUTF8(p.Mode)
	w.PutBool(p.AccountsEnabled)
	w.PutU16(p.BorderStyle)
	return w.Bytes(), nil
}

// Identifier tells a client which id it was assigned
type Identifier uint32

func (p Identifier) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagIdentifier)
	w.PutU32(uint32(p))
	return w.Bytes(), nil
}

// Census is the full-state snapshot of every live entity
type Census struct {
	Entities []Entity
}

func (p Census) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagCensus)
	w.PutU32(uint32(len(p.Entities)))
	for _, e := range p.Entities {
		pos := e.Position()
		vel := e.Velocity()
		flags := e.Flags()
		w.PutU32(uint32(e.ID()))
		w.PutI32(wireCoord(pos.X))
		w.PutI32(wireCoord(pos.Y))
		w.PutUTF8(e.Name())
		w.PutF32(e.Angle())
		w.PutF32(e.Radius())
		w.PutU32(e.Level())
		w.PutU32(e.Score())
		w.PutU16(e.Class())
		w.PutU8(uint8(e.Color()))
		w.PutBool(flags.ShowName)
		w.PutBool(flags.ShowHealth)
		w.PutU16(0) // barrels are not sent yet
		w.PutU8(wireAlpha(e.Alpha()))
		w.PutF32(vel.X)
		w.PutF32(vel.Y)
		w.PutF32(e.Health())
		w.PutBool(flags.BarrelFlash)
		w.PutBool(flags.ShieldFlash)
		w.PutBool(flags.CanCrossBorder)
	}
	return w.Bytes(), nil
}

// wireCoord converts a world coordinate to its i32 wire form. It truncates
// toward zero, saturates out-of-range values and maps NaN to 0.
func wireCoord(v float32) int32 {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// wireAlpha converts opacity to percent, saturating to the u8 range
func wireAlpha(alpha float32) uint8 {
	v := alpha * 100
	switch {
	case math.IsNaN(float64(v)), v <= 0:
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(v)
}

// Joining acknowledges a spawn request
type Joining struct{}

func (Joining) MarshalBinary() ([]byte, error) {
	return NewWriter(TagJoining).Bytes(), nil
}

// CameraUpdate centers the client's view
type CameraUpdate struct {
	X, Y int32
	FOV  float32
}

func (p CameraUpdate) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagCameraUpdate)
	w.PutI32(p.X)
	w.PutI32(p.Y)
	w.PutF32(p.FOV)
	return w.Bytes(), nil
}

// CmdOutput is a line of console output
type CmdOutput string

func (p CmdOutput) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagCmdOutput)
	w.PutUTF8(string(p))
	return w.Bytes(), nil
}

// EntityTypes carries the static JSON tank catalog
type EntityTypes string

func (p EntityTypes) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagEntityTypes)
	w.PutUTF8(string(p))
	return w.Bytes(), nil
}

type Death uint16

func (p Death) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagDeath)
	w.PutU16(uint16(p))
	return w.Bytes(), nil
}

// Message is a colored chat/system line
type Message struct {
	Text  string
	Color Color
}

func (p Message) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagMessage)
	w.PutUTF8(p.Text)
	w.PutU8(uint8(p.Color))
	return w.Bytes(), nil
}

type TankUpgrade uint16

func (p TankUpgrade) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagTankUpgrade)
	w.PutU16(uint16(p))
	return w.Bytes(), nil
}

type UpgradeReset struct{}

func (UpgradeReset) MarshalBinary() ([]byte, error) {
	return NewWriter(TagUpgradeReset).Bytes(), nil
}

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	ID    uint32
	Score uint32
	Name  string
	Class uint16
	Color Color
}

// LeaderBoard holds at most 255 rows; extra rows are not sent
type LeaderBoard struct {
	Entries []LeaderboardEntry
}

func (p LeaderBoard) MarshalBinary() ([]byte, error) {
	entries := p.Entries
	if len(entries) > math.MaxUint8 {
		entries = entries[:math.MaxUint8]
	}
	w := NewWriter(TagLeaderBoard)
	w.PutU8(uint8(len(entries)))
	for _, e := range entries {
		w.PutU32(e.ID)
		w.PutU32(e.Score)
		w.PutUTF8(e.Name)
		w.PutU16(e.Class)
		w.PutU8(uint8(e.Color))
	}
	return w.Bytes(), nil
}

type Kill struct{}

func (Kill) MarshalBinary() ([]byte, error) {
	return NewWriter(TagKill).Bytes(), nil
}

type Skill uint8

func (p Skill) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagSkill)
	w.PutU8(uint8(p))
	return w.Bytes(), nil
}

// Account is reserved until accounts land on the client
type Account struct{}

func (Account) MarshalBinary() ([]byte, error) {
	return nil, ErrNotImplemented
}

type DominationColors [4]Color

func (p DominationColors) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagDominationColors)
	for _, c := range p {
		w.PutU8(uint8(c))
	}
	return w.Bytes(), nil
}

type Audio uint8

func (p Audio) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagAudio)
	w.PutU8(uint8(p))
	return w.Bytes(), nil
}

type GameEvent uint8

func (p GameEvent) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagGameEvent)
	w.PutU8(uint8(p))
	return w.Bytes(), nil
}
