package main

import (
	"fmt"
	"time"
)

// Update runs one tick: integrate, resolve collisions, broadcast, then kick
// every connection whose delivery failed during the broadcast.
func (a *Arena) Update() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock()
	a.tick++
	elapsed := now.Sub(a.lastUpdate)
	a.lastUpdate = now
	// no clamping: a late tick takes a proportionally larger step
	dt := float32(elapsed.Milliseconds()) / nominalTick

	if ms := elapsed.Milliseconds(); ms > 0 && a.tick%logEvery == 0 {
		a.logf("cycle(elapsed=%v, fps=%d, tick=%d)", elapsed, 1000/ms, a.tick)
	}

	a.thinkBots()

	ids := a.entityIDs()
	for _, id := range ids {
		a.step(a.entities[id], dt)
	}

	for _, id := range a.broadcast(ids, now) {
		a.kick(id)
	}
}

// step advances one entity and applies one-sided collision impulses to it.
// The other side of each pair is handled when that entity takes its step.
func (a *Arena) step(e Entity, dt float32) {
	box, moved := e.Update(dt)
	if moved {
		a.spatial.Mutate(SpatialRecord{ID: e.ID(), Box: box, Radius: e.Radius()})
	} else {
		box = e.Box()
	}

	a.candidates = a.spatial.Query(box, a.candidates[:0])
	for _, c := range a.candidates {
		if c.ID == e.ID() {
			continue
		}
		if CheckCollision(c.Center(), c.Radius, e.Position(), e.Radius()) {
			e.SetVelocity(e.Velocity().Add(pushAway(e.Position(), c.Center())))
		}
	}
}

// broadcast queues camera, census and leaderboard packets on every
// connection and returns the ids whose outbox refused a send.
func (a *Arena) broadcast(ids []ID, now time.Time) []ID {
	entities := make([]Entity, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, a.entities[id])
	}
	census, err := Census{Entities: entities}.MarshalBinary()
	if err != nil {
		a.logf("census encode: %v", err)
		return nil
	}
	leaderboard, err := a.leaderboard(now).MarshalBinary()
	if err != nil {
		a.logf("leaderboard encode: %v", err)
		return nil
	}

	var failed []ID
	for _, id := range a.connectionIDs() {
		out := a.connections[id]

		switch e := a.entities[id].(type) {
		case *Tank:
			pos := e.Position()
			err := e.SendPacket(CameraUpdate{X: wireCoord(pos.X), Y: wireCoord(pos.Y), FOV: CameraFOV})
			if err != nil {
				a.logf("failed to send camera packet(uid=%d): %v", id, err)
				failed = append(failed, id)
				continue
			}
		}

		if err := out.SendBinary(census); err != nil {
			a.logf("failed to send census packet(uid=%d): %v", id, err)
			failed = append(failed, id)
			continue
		}
		if err := out.SendBinary(leaderboard); err != nil {
			a.logf("failed to send leaderboard packet(uid=%d): %v", id, err)
			failed = append(failed, id)
		}
	}
	return failed
}

// leaderboard has no ranking yet; it shows wall clock and tick rows
func (a *Arena) leaderboard(now time.Time) LeaderBoard {
	return LeaderBoard{Entries: []LeaderboardEntry{
		{ID: 1, Name: fmt.Sprintf("UNIX_TIME: %d", now.Unix()), Color: ColorCohortBlue},
		{ID: 2, Name: fmt.Sprintf("TICK: %d", a.tick), Color: ColorCohortBlue},
	}}
}
