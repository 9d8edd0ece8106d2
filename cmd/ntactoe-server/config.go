package main

import (
	"os"
	"strconv"
	"sync"
)

// Config carries the runtime knobs of the server. Values come from
// DefaultConfig, then the environment, then the command line, in that order.
type Config struct {
	Addr             string `json:"addr"`
	TickIntervalMs   int    `json:"tick_interval_ms"`
	AiLogSearchStats bool   `json:"ai_log_search_stats"`
}

func DefaultConfig() Config {
	cfg := Config{
		Addr:             ":8080",
		TickIntervalMs:   50,
		AiLogSearchStats: true,
	}
	cfg.Addr = getenv("NTACTOE_ADDR", cfg.Addr)
	if ms, err := strconv.Atoi(os.Getenv("NTACTOE_TICK_MS")); err == nil && ms > 0 {
		cfg.TickIntervalMs = ms
	}
	if v, err := strconv.ParseBool(os.Getenv("NTACTOE_AI_LOG")); err == nil {
		cfg.AiLogSearchStats = v
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type ConfigStore struct {
	mu  sync.RWMutex
	cfg Config
}

func (s *ConfigStore) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *ConfigStore) Set(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

var configStore = &ConfigStore{cfg: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}
