package main

import (
	_ "embed"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// entityTypesJSON is the static catalog sent to each client on connect
//
//go:embed entity_types.json
var entityTypesJSON string

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Server owns the HTTP surface: the game websocket, the operator API and
// optionally the static client
type Server struct {
	cfg       Config
	arena     *Arena
	hub       *Hub
	auth      *Auth
	analytics *Analytics
	started   time.Time
}

// NewServer wires the HTTP handlers to an arena. analytics may be nil.
func NewServer(cfg Config, arena *Arena, hub *Hub, auth *Auth, analytics *Analytics) *Server {
	return &Server{
		cfg:       cfg,
		arena:     arena,
		hub:       hub,
		auth:      auth,
		analytics: analytics,
		started:   time.Now(),
	}
}

// Routes configures HTTP routes
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/admin/token", s.handleAdminToken)
	mux.HandleFunc("/admin/stats", s.handleAdminStats)
	mux.HandleFunc("/invite.png", s.handleInvite)

	if s.cfg.ClientDir != "" {
		// no-cache so browsers always revalidate
		fs := http.FileServer(http.Dir(s.cfg.ClientDir))
		mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache")
			fs.ServeHTTP(w, r)
		}))
	}

	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ip := extractIP(r)
	if !s.hub.CanAccept(ip) {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	client := NewClient(s.hub, s.arena, conn, ip)
	s.hub.Add(client)
	client.Welcome(s.cfg.RoomInfo(), entityTypesJSON)
	log.Printf("new connection from %s(uid=%d)", ip, client.id)

	go client.WritePump()
	go client.ReadPump()
}
