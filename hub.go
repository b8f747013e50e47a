package main

import "sync"

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub tracks live websocket clients and enforces connection caps
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]bool
	ipConns    map[string]int
	totalConns int
	maxPerIP   int
	maxTotal   int
}

// NewHub creates a Hub with the given caps
func NewHub(maxPerIP, maxTotal int) *Hub {
	return &Hub{
		clients:  make(map[*Client]bool),
		ipConns:  make(map[string]int),
		maxPerIP: maxPerIP,
		maxTotal: maxTotal,
	}
}

// CanAccept reports whether another connection from ip fits under the caps
func (h *Hub) CanAccept(ip string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.totalConns >= h.maxTotal {
		return false
	}
	if h.ipConns[ip] >= h.maxPerIP {
		return false
	}
	return true
}

// Add starts tracking a client
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		return
	}
	h.clients[c] = true
	h.ipConns[c.remoteAddr]++
	h.totalConns++
}

// Remove stops tracking a client. Safe to call more than once.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	h.ipConns[c.remoteAddr]--
	if h.ipConns[c.remoteAddr] <= 0 {
		delete(h.ipConns, c.remoteAddr)
	}
	h.totalConns--
}

// ClientCount returns the number of tracked clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalConns
}

// CloseAll closes every tracked socket; their read pumps then clean up
func (h *Hub) CloseAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.conn.Close()
	}
}
