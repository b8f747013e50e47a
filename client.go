package main

import (
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	maxNameLen     = 32 // runes

	welcomeText         = "Welcome to Kanono: Global Offensive"
	accountsUnavailable = "Accounts are not available on this server"
)

// Client is one websocket connection. ReadPump decodes inbound frames into
// arena calls; WritePump drains the outbox onto the socket.
type Client struct {
	hub        *Hub
	arena      *Arena
	conn       *websocket.Conn
	out        *Outbox
	id         ID
	remoteAddr string
}

// NewClient creates a Client with a fresh outbox
func NewClient(hub *Hub, arena *Arena, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		arena:      arena,
		conn:       conn,
		out:        NewOutbox(),
		remoteAddr: remoteAddr,
	}
}

// Welcome queues the handshake packets and registers with the arena, which
// sends the Identifier. It must run before either pump starts.
func (c *Client) Welcome(room RoomInfo, entityTypes string) {
	_ = c.out.SendPacket(room)
	_ = c.out.SendPacket(EntityTypes(entityTypes))
	_ = c.out.SendPacket(Message{Text: welcomeText, Color: ColorBlack})

	c.id = c.arena.NewConnection(c.out)
}

// ReadPump reads frames until the socket fails or the client breaks the
// protocol, then tears the connection down
func (c *Client) ReadPump() {
	defer func() {
		if c.arena.KickConnection(c.id) {
			log.Printf("connection closed(uid=%d)", c.id)
		}
		c.hub.Remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket error(uid=%d): %v", c.id, err)
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			log.Printf("closing socket for sending non-binary(uid=%d)", c.id)
			return
		}

		pkt, err := DecodeServerbound(data)
		if err != nil {
			log.Printf("error decoding message, closing socket(uid=%d): %v", c.id, err)
			return
		}
		c.handlePacket(pkt)
	}
}

// WritePump forwards queued frames to the socket. It exits after a close
// frame, a write error, or once the outbox is closed and drained.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		// later sends fail, which the next broadcast turns into a kick
		c.out.Close()
		c.conn.Close()
	}()

	var frames []Frame
	for {
		select {
		case <-c.out.Ready():
			frames = c.out.Drain(frames[:0])
			if !c.writeFrames(frames) {
				return
			}

		case <-c.out.Done():
			frames = c.out.Drain(frames[:0])
			c.writeFrames(frames)
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// writeFrames reports whether the pump should keep running
func (c *Client) writeFrames(frames []Frame) bool {
	for _, f := range frames {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(f.Type, f.Data); err != nil {
			return false
		}
		if f.Type == websocket.CloseMessage {
			return false
		}
	}
	return true
}

// handlePacket routes one decoded packet into the arena
func (c *Client) handlePacket(pkt ServerboundPacket) {
	switch p := pkt.(type) {
	case InputPacket:
		c.arena.Input(c.id, p.Input())

	case SpawnPacket:
		name := cleanName(p.Name)
		if c.arena.PlayerSpawn(c.id, name) {
			log.Printf("got spawn packet(uid=%d): %s", c.id, name)
		}

	case CmdPacket:
		_ = c.out.SendPacket(CmdOutput(c.arena.RunCommand(c.id, p.Line)))

	case LevelUpPacket:
		c.arena.LevelUp(c.id)

	case LoginPacket:
		// accounts are stubbed out
		_ = c.out.SendPacket(Message{Text: accountsUnavailable, Color: ColorRed})

	case VersionPacket:
		debugf("client version %d(uid=%d)", p.Version, c.id)

	default:
		debugf("ignoring %T(uid=%d)", pkt, c.id)
	}
}

// cleanName trims whitespace and caps the name length
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= maxNameLen {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxNameLen])
}
