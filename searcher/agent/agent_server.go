package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alinea/game"
	"alinea/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// MaxDepth bounds the search depth a client may ask for.
const MaxDepth = 8

// FindMoveRequest asks for the best action of Player on the board given by Cells.
// A zero Depth means searcher.DefaultDepth; an empty Rules means the server default.
type FindMoveRequest struct {
	Rules  string        `json:"rules"`
	Depth  int           `json:"depth"`
	Player game.Player   `json:"player"`
	Cells  []game.Player `json:"cells"`
}

type FindMoveResponse struct {
	Action   game.Action `json:"action"`
	Score    int         `json:"score"`
	Nodes    int         `json:"nodes"`
	Leaves   int         `json:"leaves"`
	Duration string      `json:"duration"`
}

// Server exposes a minimax agent over HTTP.
type Server struct {
	rules      string
	goroutines int
	graph      *game.Graph
}

func NewServer(rules string, goroutines int) (*Server, error) {
	if _, err := game.NewRules(rules); err != nil {
		return nil, err
	}
	return &Server{
		rules:      rules,
		goroutines: goroutines,
		graph:      game.StandardGraph(),
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/rules", s.handleRules)
	r.Post("/findmove", s.handleFindMove)
	return r
}

// ListenAndServe blocks serving the agent on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Str("addr", addr).Str("rules", s.rules).Msg("starting agent server")
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default": s.rules,
		"known":   game.RuleNames(),
	})
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var req FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	agent, board, err := s.prepare(req)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	action, metric, err := agent.FindMove(board, req.Player)
	if errors.Is(err, ErrNoAction) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, "failed to find move: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, FindMoveResponse{
		Action:   action,
		Score:    metric.Score,
		Nodes:    metric.Nodes,
		Leaves:   metric.Leaves,
		Duration: metric.Duration.String(),
	})
}

// prepare validates req and builds a fresh agent and board for it.
func (s *Server) prepare(req FindMoveRequest) (Agent, *game.Board, error) {
	name := req.Rules
	if name == "" {
		name = s.rules
	}
	rules, err := game.NewRules(name)
	if err != nil {
		return nil, nil, err
	}
	if req.Depth < 0 || req.Depth > MaxDepth {
		return nil, nil, fmt.Errorf("depth %d outside [0, %d]", req.Depth, MaxDepth)
	}
	if !req.Player.Valid() {
		return nil, nil, fmt.Errorf("unknown player %d", req.Player)
	}
	board, err := game.NewBoardFromCells(s.graph, rules.Pieces(), req.Cells)
	if err != nil {
		return nil, nil, err
	}

	options := []searcher.Option{searcher.WithGoroutines(s.goroutines), searcher.WithMetrics()}
	if req.Depth > 0 {
		options = append(options, searcher.WithDepth(req.Depth))
	}
	return NewMinimaxAgent(rules, options...), board, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("handled request")
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
