package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hexveil/ntactoe/game"
)

// analysisPayload describes one finished engine search: which move came out
// of it and what the search cost.
type analysisPayload struct {
	Mark       string  `json:"mark"`
	MoveIndex  int     `json:"move_index"`
	MoveNumber int     `json:"move_number"`
	Depth      int     `json:"depth"`
	Score      int     `json:"score"`
	Nodes      int64   `json:"nodes"`
	Evals      int64   `json:"evals"`
	Cutoffs    int64   `json:"cutoffs"`
	ElapsedMs  int64   `json:"elapsed_ms"`
	Nps        float64 `json:"nps"`
}

type AnalysisClient struct {
	hub  *AnalysisHub
	conn *websocket.Conn
	send chan []byte
}

// AnalysisHub streams engine search statistics to observers, independent of
// the game state hub so a dashboard can subscribe to just the numbers.
type AnalysisHub struct {
	mu        sync.Mutex
	clients   map[*AnalysisClient]struct{}
	broadcast chan analysisPayload
}

func NewAnalysisHub() *AnalysisHub {
	return &AnalysisHub{
		clients:   make(map[*AnalysisClient]struct{}),
		broadcast: make(chan analysisPayload, 32),
	}
}

func (h *AnalysisHub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcast:
			h.mu.Lock()
			if len(h.clients) == 0 {
				h.mu.Unlock()
				continue
			}
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "analysis", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

func (h *AnalysisHub) Register(c *AnalysisClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *AnalysisHub) Unregister(c *AnalysisClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *AnalysisHub) Publish(payload analysisPayload) {
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *AnalysisHub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *AnalysisClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func serveAnalysisWS(hub *AnalysisHub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &AnalysisClient{hub: hub, conn: conn, send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}

func analysisFromStats(cell game.Cell, entry game.HistoryEntry, stats game.SearchStats) analysisPayload {
	return analysisPayload{
		Mark:       cell.String(),
		MoveIndex:  entry.Move.Index,
		MoveNumber: entry.N,
		Depth:      stats.Depth,
		Score:      stats.BestScore,
		Nodes:      stats.Nodes,
		Evals:      stats.Evals,
		Cutoffs:    stats.Cutoffs,
		ElapsedMs:  stats.Elapsed.Milliseconds(),
		Nps:        stats.NodesPerSecond(),
	}
}
