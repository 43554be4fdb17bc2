// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jeranaias/clara-tui/internal/logging"
)

// Default settings.
const (
	DefaultPort  = 5000
	DefaultHost  = "127.0.0.1"
	anonymousKey = "anonymous"
)

// Error messages returned to clients.
const (
	msgInvalidRequest = "Requisição inválida"
	msgEmptyMessage   = "Mensagem não pode ser vazia"
	msgReplyFailed    = "Ocorreu um erro interno ao gerar a resposta."
	msgUnavailable    = "Não foi possível conectar ao serviço de IA."
	msgInternal       = "Erro interno no servidor"
)

// Version is reported by /health; the CLI overrides it at startup.
var Version = "dev"

// ============================================================================
// OPTIONS
// ============================================================================

// Options configures a Server.
type Options struct {
	Host string
	Port int
	// HistoryLimit is the number of turns kept per user id.
	HistoryLimit int
	// SystemPrompt is prepended to every reply request.
	SystemPrompt string
	// RatePerMinute is the per-client allowance; 0 disables limiting.
	RatePerMinute int
	// Replier produces answers (EchoReplier when nil).
	Replier Replier
}

// ============================================================================
// SERVER
// ============================================================================

// Server is the reference chat responder.
type Server struct {
	opts    Options
	router  *chi.Mux
	history *History
	replier Replier
	server  *http.Server
}

// New creates a Server. Zero fields in opts take their defaults.
func New(opts Options) *Server {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.Replier == nil {
		opts.Replier = EchoReplier{}
	}

	s := &Server{
		opts:    opts,
		router:  chi.NewRouter(),
		history: NewHistory(opts.HistoryLimit),
		replier: opts.Replier,
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Addr returns host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, fmt.Sprint(s.opts.Port))
}

// History exposes the per-user turn store.
func (s *Server) History() *History {
	return s.history
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware())
	r.Use(SecurityHeadersMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(BodyLimitMiddleware(MaxBodySize))
	if s.opts.RatePerMinute > 0 {
		r.Use(RateLimitMiddleware(NewRateLimiter(s.opts.RatePerMinute)))
	}

	r.Post("/chat", s.handleChat)
	r.Get("/health", s.handleHealth)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Rota não encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Método não permitido")
	})
}

// ============================================================================
// CHAT
// ============================================================================

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Mensagem string `json:"mensagem"`
	UserID   string `json:"user_id"`
}

// ChatResponse is a successful reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is every non-2xx body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	log := logging.Component("server")

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Mensagem muito longa")
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	message := strings.TrimSpace(req.Mensagem)
	if message == "" {
		writeError(w, http.StatusBadRequest, msgEmptyMessage)
		return
	}

	key := req.UserID
	if key == "" {
		key = anonymousKey
	}

	s.history.Append(key, Turn{Role: RoleUser, Content: message})
	messages := append([]Turn{{Role: RoleSystem, Content: s.opts.SystemPrompt}}, s.history.Turns(key)...)

	reply, err := s.replier.Reply(r.Context(), req.UserID, messages)
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("reply failed")
		if errors.Is(err, ErrReplierUnavailable) {
			writeError(w, http.StatusServiceUnavailable, msgUnavailable)
			return
		}
		writeError(w, http.StatusInternalServerError, msgReplyFailed)
		return
	}

	s.history.Append(key, Turn{Role: RoleAssistant, Content: reply})
	log.Debug().
		Str("user_id", req.UserID).
		Int("history", s.history.Len(key)).
		Int("sent", len(messages)).
		Msg("reply generated")

	writeJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

// ============================================================================
// HEALTH
// ============================================================================

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: Version})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on Addr and serves until Shutdown. It returns nil after a
// clean shutdown.
func (s *Server) Start() error {
	log := logging.Component("server")
	log.Info().Str("addr", s.Addr()).Str("version", Version).Msg("server starting")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run starts the server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log := logging.Component("server")
	log.Info().Msg("server shutting down")
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
