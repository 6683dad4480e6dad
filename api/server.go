package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/math"

	"github.com/openalpha/honzon/api/middleware"
	"github.com/openalpha/honzon/api/websocket"
	"github.com/openalpha/honzon/metrics"
)

// Config contains server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// How often the poller refreshes the risk and auction indexes and
	// pushes snapshots to websocket subscribers.
	PollInterval time.Duration

	RateLimit *middleware.RateLimitConfig
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PollInterval: 500 * time.Millisecond,
	}
}

// Server exposes the collateral subsystem state over HTTP and WebSocket:
// treasury pools, open positions with risk figures, and running auctions.
type Server struct {
	config *Config
	source StateSource

	hub      *websocket.Hub
	risk     *RiskWatch
	auctions *AuctionIndex
	limiter  *middleware.RateLimiter

	httpServer *http.Server
	quit       chan struct{}
}

// NewServer creates a new API server over the given state source
func NewServer(config *Config, source StateSource) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	return &Server{
		config:   config,
		source:   source,
		hub:      websocket.NewHub(nil),
		risk:     NewRiskWatch(),
		auctions: NewAuctionIndex(),
		limiter:  middleware.NewRateLimiter(config.RateLimit),
		quit:     make(chan struct{}),
	}
}

// Start starts the HTTP server and background loops. It blocks until the
// listener fails or the server is stopped.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/v1/treasury", s.handleTreasury)
	mux.HandleFunc("/v1/positions", s.handlePositions)
	mux.HandleFunc("/v1/positions/", s.handlePosition)
	mux.HandleFunc("/v1/auctions", s.handleAuctions)
	mux.HandleFunc("/v1/auctions/", s.handleAuction)

	mux.HandleFunc("/ws", s.hub.ServeWS)

	handler := corsMiddleware(s.limiter.Middleware(mux))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	go s.hub.Run()
	go s.pollLoop()

	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	close(s.quit)
	s.limiter.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// pollLoop refreshes the in-memory indexes from the state source and feeds
// the websocket hub.
func (s *Server) pollLoop() {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.quit:
			return
		}
	}
}

func (s *Server) refresh() {
	positions := s.source.Positions()
	s.risk.Reload(positions)
	for _, position := range positions {
		s.hub.BroadcastPosition(position.Owner, position)
	}

	auctions := s.source.Auctions()
	s.auctions.Reload(auctions)
	s.hub.UpdateSnapshot(websocket.ChannelAuctions, auctions)

	s.hub.UpdateSnapshot(websocket.ChannelTreasury, s.source.TreasuryStatus())
}

// ============ Handlers ============

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"clients":   s.hub.GetClientCount(),
		"positions": s.risk.Len(),
		"auctions":  s.auctions.Len(),
		"timestamp": NowMillis(),
	})
}

func (s *Server) handleTreasury(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.source.TreasuryStatus())
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"positions": s.source.Positions(),
	})
}

// handlePosition serves /v1/positions/{owner} and /v1/positions/risky.
// The risky view reads the ratio-ordered index, optionally bounded by
// ?max_ratio= and ?limit=.
func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tail := strings.TrimPrefix(r.URL.Path, "/v1/positions/")
	if tail == "" {
		s.handlePositions(w, r)
		return
	}

	if tail == "risky" {
		limit := queryLimit(r, 20)
		var positions []*PositionInfo
		if raw := r.URL.Query().Get("max_ratio"); raw != "" {
			maxRatio, err := math.LegacyNewDecFromStr(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid max_ratio")
				return
			}
			positions = s.risk.Below(maxRatio, limit)
		} else {
			positions = s.risk.Riskiest(limit)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"positions": positions,
		})
		return
	}

	position := s.source.Position(tail)
	if position == nil {
		writeError(w, http.StatusNotFound, "position not found")
		return
	}
	writeJSON(w, http.StatusOK, position)
}

func (s *Server) handleAuctions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := queryLimit(r, 100)
	var auctions []*AuctionStatus
	if raw := r.URL.Query().Get("ending_before"); raw != "" {
		block, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid ending_before")
			return
		}
		auctions = s.auctions.EndingBefore(block, limit)
	} else {
		auctions = s.auctions.ClosingSoonest(limit)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"auctions": auctions,
	})
}

// handleAuction serves /v1/auctions/{id}
func (s *Server) handleAuction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tail := strings.TrimPrefix(r.URL.Path, "/v1/auctions/")
	if tail == "" {
		s.handleAuctions(w, r)
		return
	}

	id, err := strconv.ParseUint(tail, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid auction id")
		return
	}

	auction := s.auctions.Get(id)
	if auction == nil {
		writeError(w, http.StatusNotFound, "auction not found")
		return
	}
	writeJSON(w, http.StatusOK, auction)
}

// ============ Helpers ============

// queryLimit parses ?limit= with a default and a hard cap
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
