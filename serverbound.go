package main

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPacket    = errors.New("invalid packet id")
	ErrInvalidLoginType = errors.New("invalid login type")
)

// Client -> Server packet tags. These share numbers with the clientbound
// table but not names.
const (
	TagInput              byte = 0x0
	TagSpawn              byte = 0x1
	TagCmd                byte = 0x2
	TagLevelUp            byte = 0x3
	TagPing               byte = 0x4
	TagSkillUpgrade       byte = 0x5
	TagTankUpgradeRequest byte = 0x6
	TagLogin              byte = 0x7
	TagVersion            byte = 0x8
)

// ServerboundPacket is any decoded client message. The marshal side mirrors
// what the browser client writes and is used by tests and tooling.
type ServerboundPacket interface {
	MarshalBinary() ([]byte, error)
	serverbound()
}

// InputPacket is the per-frame control snapshot
type InputPacket struct {
	Left, Right, Up, Down bool
	Angle                 float32
	LMB                   bool
	MX, MY                int16
	RMB                   bool
}

type SpawnPacket struct {
	Name string
}

type CmdPacket struct {
	Line string
}

type LevelUpPacket struct{}

type PingPacket struct{}

type SkillUpgradePacket struct {
	Skill uint8
}

type TankUpgradePacket struct {
	Upgrade uint8
}

// LoginType selects between registering and logging in
type LoginType uint8

const (
	LoginRegister LoginType = 0
	LoginLogin    LoginType = 1
)

type LoginPacket struct {
	Type     LoginType
	Name     string
	Password string
}

type VersionPacket struct {
	Version uint16
}

func (InputPacket) serverbound()        {}
func (SpawnPacket) serverbound()        {}
func (CmdPacket) serverbound()          {}
func (LevelUpPacket) serverbound()      {}
func (PingPacket) serverbound()         {}
func (SkillUpgradePacket) serverbound() {}
func (TankUpgradePacket) serverbound()  {}
func (LoginPacket) serverbound()        {}
func (VersionPacket) serverbound()      {}

// Input converts the wire packet into a tank input snapshot
func (p InputPacket) Input() Input {
	return Input{
		Left:  p.Left,
		Right: p.Right,
		Up:    p.Up,
		Down:  p.Down,
		Angle: p.Angle,
		LMB:   p.LMB,
		MX:    p.MX,
		MY:    p.MY,
		RMB:   p.RMB,
	}
}

func (p InputPacket) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagInput)
	w.PutBool(p.Left)
	w.PutBool(p.Right)
	w.PutBool(p.Up)
	w.PutBool(p.Down)
	w.PutF32(p.Angle)
	w.PutBool(p.LMB)
	w.PutI16(p.MX)
	w.PutI16(p.MY)
	w.PutBool(p.RMB)
	return w.Bytes(), nil
}

func (p SpawnPacket) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagSpawn)
	w.PutUTF8(p.Name)
	return w.Bytes(), nil
}

func (p CmdPacket) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagCmd)
	w.PutUTF8(p.Line)
	return w.Bytes(), nil
}

func (LevelUpPacket) MarshalBinary() ([]byte, error) {
	return NewWriter(TagLevelUp).Bytes(), nil
}

func (PingPacket) MarshalBinary() ([]byte, error) {
	return NewWriter(TagPing).Bytes(), nil
}

func (p SkillUpgradePacket) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagSkillUpgrade)
	w.PutU8(p.Skill)
	return w.Bytes(), nil
}

func (p TankUpgradePacket) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagTankUpgradeRequest)
	w.PutU8(p.Upgrade)
	return w.Bytes(), nil
}

func (p LoginPacket) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagLogin)
	w.PutU8(uint8(p.Type))
	w.PutUTF8(p.Name)
	w.PutUTF8(p.Password)
	return w.Bytes(), nil
}

func (p VersionPacket) MarshalBinary() ([]byte, error) {
	w := NewWriter(TagVersion)
	w.PutU16(p.Version)
	return w.Bytes(), nil
}

// DecodeServerbound parses one client frame. Unknown tags, truncated payloads
// and invalid enumerated values are errors; trailing bytes are ignored.
func DecodeServerbound(b []byte) (ServerboundPacket, error) {
	r := NewReader(b)
	tag, err := r.U8()
	if err != nil {
		return nil, err
	}
	pkt, err := decodePayload(tag, r)
	if err != nil {
		return nil, fmt.Errorf("decode packet 0x%x: %w", tag, err)
	}
	return pkt, nil
}

func decodePayload(tag byte, r *Reader) (ServerboundPacket, error) {
	switch tag {
	case TagInput:
		return decodeInput(r)
	case TagSpawn:
		name, err := r.UTF8()
		return SpawnPacket{Name: name}, err
	case TagCmd:
		line, err := r.UTF8()
		return CmdPacket{Line: line}, err
	case TagLevelUp:
		return LevelUpPacket{}, nil
	case TagPing:
		return PingPacket{}, nil
	case TagSkillUpgrade:
		v, err := r.U8()
		return SkillUpgradePacket{Skill: v}, err
	case TagTankUpgradeRequest:
		v, err := r.U8()
		return TankUpgradePacket{Upgrade: v}, err
	case TagLogin:
		return decodeLogin(r)
	case TagVersion:
		v, err := r.U16()
		return VersionPacket{Version: v}, err
	}
	return nil, ErrUnknownPacket
}

func decodeInput(r *Reader) (ServerboundPacket, error) {
	var p InputPacket
	var err error
	if p.Left, err = r.Bool(); err != nil {
		return nil, err
	}
	if p.Right, err = r.Bool(); err != nil {
		return nil, err
	}
	if p.Up, err = r.Bool(); err != nil {
		return nil, err
	}
	if p.Down, err = r.Bool(); err != nil {
		return nil, err
	}
	if p.Angle, err = r.F32(); err != nil {
		return nil, err
	}
	if p.LMB, err = r.Bool(); err != nil {
		return nil, err
	}
	if p.MX, err = r.I16(); err != nil {
		return nil, err
	}
	if p.MY, err = r.I16(); err != nil {
		return nil, err
	}
	if p.RMB, err = r.Bool(); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeLogin(r *Reader) (ServerboundPacket, error) {
	typ, err := r.U8()
	if err != nil {
		return nil, err
	}
	if typ != uint8(LoginRegister) && typ != uint8(LoginLogin) {
		return nil, ErrInvalidLoginType
	}
	name, err := r.UTF8()
	if err != nil {
		return nil, err
	}
	password, err := r.UTF8()
	if err != nil {
		return nil, err
	}
	return LoginPacket{Type: LoginType(typ), Name: name, Password: password}, nil
}
