package main

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	inviteSize  = 256 // px
	statsDays   = 1
	historyDays = 7
)

// ArenaStats is the operator snapshot served by /admin/stats
type ArenaStats struct {
	Tick             uint64         `msgpack:"tick"`
	Entities         int            `msgpack:"entities"`
	Connections      int            `msgpack:"connections"`
	Bots             int            `msgpack:"bots"`
	Clients          int            `msgpack:"clients"`
	Width            uint32         `msgpack:"width"`
	Height           uint32         `msgpack:"height"`
	UptimeSeconds    int64          `msgpack:"uptime_seconds"`
	Events           map[string]int `msgpack:"events,omitempty"`
	DailyConnections []DayCount     `msgpack:"daily_connections,omitempty"`
	DroppedEvents    int            `msgpack:"dropped_events"`
}

// Stats returns a consistent snapshot of arena counters
func (a *Arena) Stats() ArenaStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	bots := 0
	for _, e := range a.entities {
		if t, ok := e.(*Tank); ok && t.Kind() == TankBot {
			bots++
		}
	}
	return ArenaStats{
		Tick:        a.tick,
		Entities:    len(a.entities),
		Connections: len(a.connections),
		Bots:        bots,
		Width:       a.width,
		Height:      a.height,
	}
}

func (s *Server) handleAdminToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token, err := s.auth.Login(r.FormValue("password"), extractIP(r))
	switch {
	case errors.Is(err, ErrAdminDisabled):
		http.NotFound(w, r)
		return
	case errors.Is(err, ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
		return
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case err != nil:
		log.Printf("admin token error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(token))
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	err := s.auth.ValidateToken(bearerToken(r))
	if errors.Is(err, ErrAdminDisabled) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stats := s.arena.Stats()
	stats.Clients = s.hub.ClientCount()
	stats.UptimeSeconds = int64(time.Since(s.started) / time.Second)
	if s.analytics != nil {
		stats.DroppedEvents = s.analytics.Dropped()
		if counts, err := s.analytics.EventCounts(statsDays); err != nil {
			log.Printf("admin stats: event counts: %v", err)
		} else {
			stats.Events = counts
		}
		if days, err := s.analytics.DailyConnections(historyDays); err != nil {
			log.Printf("admin stats: daily connections: %v", err)
		} else {
			stats.DailyConnections = days
		}
	}

	data, err := msgpack.Marshal(stats)
	if err != nil {
		log.Printf("admin stats encode: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/msgpack")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	if s.cfg.PublicURL == "" {
		http.NotFound(w, r)
		return
	}
	png, err := qrcode.Encode(s.cfg.PublicURL, qrcode.Medium, inviteSize)
	if err != nil {
		log.Printf("invite qr: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
