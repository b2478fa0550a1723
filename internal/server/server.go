// Package server exposes the battle service over HTTP and websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pefman/duel-arena/internal/battle"
	"github.com/pefman/duel-arena/internal/stats"
)

// Options tunes the HTTP server.
type Options struct {
	CORSOrigin        string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the duel HTTP API.
type Server struct {
	svc     *battle.Service
	tracker *stats.Tracker
	opts    Options
}

// New creates a server for svc. tracker backs the stats endpoints.
func New(svc *battle.Service, tracker *stats.Tracker, opts Options) *Server {
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 5 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if tracker == nil {
		tracker = stats.NewTracker()
	}
	return &Server{svc: svc, tracker: tracker, opts: opts}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/combatants", s.listCombatants).Methods(http.MethodGet)
	r.HandleFunc("/api/combatants", s.createCombatant).Methods(http.MethodPost)
	r.HandleFunc("/api/combatants/{id:-?[0-9]+}", s.getCombatant).Methods(http.MethodGet)

	r.HandleFunc("/api/battles", s.createBattle).Methods(http.MethodPost)
	r.HandleFunc("/api/battles", s.listBattles).Methods(http.MethodGet)
	r.HandleFunc("/api/battles/{id}", s.getBattle).Methods(http.MethodGet)

	r.HandleFunc("/api/stats/leaderboard", s.leaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/stats/max-hit/today", s.maxHitToday).Methods(http.MethodGet)

	r.HandleFunc("/ws/battles", s.battleStream)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such route")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return withCORS(s.opts.CORSOrigin)(r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}

	log.Printf("duel api listening on %s", ln.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
