package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/hexveil/ntactoe/game"
)

type StateResponse struct {
	Settings        GameSettingsDTO   `json:"settings"`
	Config          Config            `json:"config"`
	Status          string            `json:"status"`
	NextPlayer      string            `json:"next_player"`
	Winner          string            `json:"winner"`
	BoardSize       int               `json:"board_size"`
	Board           [][]string        `json:"board"`
	WinningLine     []int             `json:"winning_line"`
	History         []historyEntryDTO `json:"history"`
	AiThinking      bool              `json:"ai_thinking"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	BoardSize int    `json:"board_size"`
	Mode      string `json:"mode"`
	HumanMark string `json:"human_mark"`
	FirstMove string `json:"first_move"`
}

type apiMove struct {
	Index int `json:"index"`
}

type historyEntryDTO struct {
	N         int     `json:"n"`
	Index     int     `json:"index"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Mark      string  `json:"mark"`
	IsAi      bool    `json:"is_ai"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

type resetPayload struct {
	Status          string            `json:"status"`
	NextPlayer      string            `json:"next_player"`
	BoardSize       int               `json:"board_size"`
	Board           [][]string        `json:"board"`
	History         []historyEntryDTO `json:"history"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type settingsPayload struct {
	Settings GameSettingsDTO `json:"settings"`
	Config   Config          `json:"config"`
}

type hintResponse struct {
	Index     int    `json:"index"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Mark      string `json:"mark"`
	Depth     int    `json:"depth"`
	Score     int    `json:"score"`
	Nodes     int64  `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

func main() {
	cfg := GetConfig()
	addr := flag.String("addr", cfg.Addr, "listen address")
	flag.Parse()
	cfg.Addr = *addr
	configStore.Set(cfg)

	controller, err := game.NewGameController(game.DefaultGameSettings())
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	controller.SetSearchLogging(cfg.AiLogSearchStats)

	hub := NewHub()
	analysisHub := NewAnalysisHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx.Done())
	go analysisHub.Run(ctx.Done())
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.TickIntervalMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !controller.Tick() {
					continue
				}
				hub.broadcastState <- controllerState(controller)
				if entry, ok := controller.LastHistoryEntry(); ok && entry.IsAi && analysisHub.HasClients() {
					if cell, stats, ok := controller.LastSearchStats(); ok {
						analysisHub.Publish(analysisFromStats(cell, entry, stats))
					}
				}
			}
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, controllerState(controller))
	})

	r.Post("/api/start", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		settings := controller.Settings()
		if payload.Settings != nil {
			settings = settingsFromDTO(*payload.Settings, settings)
		}
		if err := controller.StartGame(settings); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, controllerState(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		controller.Stop()
		writeJSON(w, http.StatusOK, controllerState(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Post("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		if err := controller.Reset(); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, controllerState(controller))
		hub.broadcastReset <- resetFromController(controller)
	})

	r.Get("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		})
	})

	r.Post("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Settings *GameSettingsDTO `json:"settings"`
			Config   *Config          `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if payload.Config != nil {
			configStore.Set(*payload.Config)
			controller.SetSearchLogging(payload.Config.AiLogSearchStats)
		}
		if payload.Settings != nil {
			settings := settingsFromDTO(*payload.Settings, controller.Settings())
			if err := controller.UpdateSettings(settings); err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, game.ErrGameRunning) {
					status = http.StatusConflict
				}
				writeJSON(w, status, map[string]string{"error": err.Error()})
				return
			}
		}
		hub.broadcastSettings <- settingsPayload{
			Settings: controllerSettingsDTO(controller.Settings()),
			Config:   GetConfig(),
		}
		writeJSON(w, http.StatusOK, controllerState(controller))
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var payload apiMove
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		applied, errMsg := controller.ApplyHumanMove(game.NewMove(payload.Index))
		if !applied {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
			return
		}
		hub.broadcastState <- controllerState(controller)
		writeJSON(w, http.StatusOK, controllerState(controller))
	})

	r.Get("/api/hint", func(w http.ResponseWriter, r *http.Request) {
		state := controller.State()
		if state.Status != game.StatusRunning {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "game not running"})
			return
		}
		size := state.Board.Size()
		ai := game.NewAIPlayer(state.ToMove, size)
		move := ai.ChooseMove(state)
		stats, _ := ai.LastStats()
		writeJSON(w, http.StatusOK, hintResponse{
			Index:     move.Index,
			Row:       move.Row(size),
			Col:       move.Col(size),
			Mark:      state.ToMove.String(),
			Depth:     stats.Depth,
			Score:     stats.BestScore,
			Nodes:     stats.Nodes,
			ElapsedMs: stats.Elapsed.Milliseconds(),
		})
	})

	r.Get("/ws/game", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, controller, w, r)
	})
	r.Get("/ws/analysis", func(w http.ResponseWriter, r *http.Request) {
		serveAnalysisWS(analysisHub, w, r)
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[server] listening on %s", cfg.Addr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("[server] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("[server] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[server] forced close failed: %v", closeErr)
		}
	}

	cancel()
	if runErr != nil {
		log.Printf("[server] exiting after server error: %v", runErr)
	}
}

func serveWS(hub *Hub, controller *game.GameController, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(controllerState(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			return
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_state":
			client.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(controllerState(controller))})
		}
	}
}

func controllerState(controller *game.GameController) StateResponse {
	state := controller.State()
	return StateResponse{
		Settings:        controllerSettingsDTO(controller.Settings()),
		Config:          GetConfig(),
		Status:          statusToString(state.Status),
		NextPlayer:      nextPlayerString(state),
		Winner:          winnerString(state.Status),
		BoardSize:       state.Board.Size(),
		Board:           boardToRows(state.Board),
		WinningLine:     append([]int(nil), state.WinningLine...),
		History:         historyToDTO(controller.History(), state.Board.Size()),
		AiThinking:      controller.AiThinking(),
		TurnStartedAtMs: controller.TurnStartedAtMs(),
	}
}

func resetFromController(controller *game.GameController) resetPayload {
	state := controller.State()
	return resetPayload{
		Status:          statusToString(state.Status),
		NextPlayer:      nextPlayerString(state),
		BoardSize:       state.Board.Size(),
		Board:           boardToRows(state.Board),
		History:         historyToDTO(controller.History(), state.Board.Size()),
		TurnStartedAtMs: controller.TurnStartedAtMs(),
	}
}

// nextPlayerString hides the side to move once the game is over.
func nextPlayerString(state game.GameState) string {
	if state.Status.Over() {
		return ""
	}
	return state.ToMove.String()
}

func winnerString(status game.GameStatus) string {
	switch status {
	case game.StatusXWon:
		return "X"
	case game.StatusOWon:
		return "O"
	default:
		return ""
	}
}

func settingsFromDTO(dto GameSettingsDTO, base game.GameSettings) game.GameSettings {
	settings := base
	if dto.BoardSize != 0 {
		settings.BoardSize = dto.BoardSize
	}
	switch dto.Mode {
	case "ai_vs_ai":
		settings.XType = game.PlayerAI
		settings.OType = game.PlayerAI
	case "human_vs_human":
		settings.XType = game.PlayerHuman
		settings.OType = game.PlayerHuman
	case "ai_vs_human":
		if strings.EqualFold(dto.HumanMark, "x") {
			settings.XType = game.PlayerHuman
			settings.OType = game.PlayerAI
		} else {
			settings.XType = game.PlayerAI
			settings.OType = game.PlayerHuman
		}
	}
	switch strings.ToLower(dto.FirstMove) {
	case "x":
		settings.FirstMove = game.FirstMoveX
	case "o":
		settings.FirstMove = game.FirstMoveO
	case "random":
		settings.FirstMove = game.FirstMoveRandom
	}
	return settings
}

func controllerSettingsDTO(settings game.GameSettings) GameSettingsDTO {
	mode := "ai_vs_human"
	humanMark := ""
	switch {
	case settings.XType == game.PlayerAI && settings.OType == game.PlayerAI:
		mode = "ai_vs_ai"
	case settings.XType == game.PlayerHuman && settings.OType == game.PlayerHuman:
		mode = "human_vs_human"
	case settings.XType == game.PlayerHuman:
		humanMark = "X"
	default:
		humanMark = "O"
	}
	return GameSettingsDTO{
		BoardSize: settings.BoardSize,
		Mode:      mode,
		HumanMark: humanMark,
		FirstMove: firstMoveString(settings.FirstMove),
	}
}

func firstMoveString(policy game.FirstMovePolicy) string {
	switch policy {
	case game.FirstMoveX:
		return "x"
	case game.FirstMoveO:
		return "o"
	default:
		return "random"
	}
}

func boardToRows(board game.Board) [][]string {
	size := board.Size()
	rows := make([][]string, size)
	for y := 0; y < size; y++ {
		rows[y] = make([]string, size)
		for x := 0; x < size; x++ {
			cell := board.At(y*size + x)
			if cell == game.CellEmpty {
				rows[y][x] = ""
			} else {
				rows[y][x] = cell.String()
			}
		}
	}
	return rows
}

func statusToString(status game.GameStatus) string {
	switch status {
	case game.StatusNotStarted:
		return "not_started"
	case game.StatusXWon:
		return "x_won"
	case game.StatusOWon:
		return "o_won"
	case game.StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func historyToDTO(entries []game.HistoryEntry, size int) []historyEntryDTO {
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryToDTO(entry, size))
	}
	return result
}

func historyEntryToDTO(entry game.HistoryEntry, size int) historyEntryDTO {
	dto := historyEntryDTO{
		N:         entry.N,
		Index:     entry.Move.Index,
		Mark:      entry.Cell.String(),
		IsAi:      entry.IsAi,
		ElapsedMs: entry.ElapsedMs,
	}
	if size > 0 {
		dto.Row = entry.Move.Row(size)
		dto.Col = entry.Move.Col(size)
	}
	return dto
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
