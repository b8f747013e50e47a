package main

import (
	"math"
	"strconv"
)

const botThinkEvery = 60 // ticks between wander re-rolls

// AddBot places a bot tank at a random spot in the world. Bots have no
// connection, so they are simulated and censused but never sent anything.
func (a *Arena) AddBot(name string) ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.allocID()
	pos := Vec2{
		X: a.rng.Float32() * float32(a.width),
		Y: a.rng.Float32() * float32(a.height),
	}
	tank := NewBotTank(id, name, pos)
	tank.SetColor(Color(a.rng.Intn(int(colorCount))))
	a.addEntity(tank)
	a.track(EvtBot, id, name)
	return id
}

// thinkBots re-rolls each bot's wander direction on a fixed cadence
func (a *Arena) thinkBots() {
	if a.tick%botThinkEvery != 0 {
		return
	}
	for _, id := range a.entityIDs() {
		switch e := a.entities[id].(type) {
		case *Tank:
			if e.Kind() == TankBot {
				e.SetInput(a.wander(e.Position()))
			}
		}
	}
}

// wander picks one of the eight compass directions, or standing still.
// Bots that drifted out of the world are steered back in.
func (a *Arena) wander(pos Vec2) Input {
	var in Input
	switch a.rng.Intn(3) {
	case 0:
		in.Left = true
	case 1:
		in.Right = true
	}
	switch a.rng.Intn(3) {
	case 0:
		in.Up = true
	case 1:
		in.Down = true
	}
	in.Angle = a.rng.Float32() * 2 * math.Pi

	switch {
	case pos.X < 0:
		in.Left, in.Right = false, true
	case pos.X > float32(a.width):
		in.Left, in.Right = true, false
	}
	switch {
	case pos.Y < 0:
		in.Up, in.Down = false, true
	case pos.Y > float32(a.height):
		in.Up, in.Down = true, false
	}
	return in
}

func botName(n int) string {
	return "Bot " + strconv.Itoa(n)
}
