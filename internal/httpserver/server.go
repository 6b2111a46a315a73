// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (request IDs, request logging, panic recovery,
//     timeouts, JSON, CORS).
//   - Public endpoints: "/" (embedded browser client), "/health", "/api/themes".
//   - Game endpoints: /api/game/{new,restart,reset,guess,state}.
//   - Daily puzzle endpoints: mounted under /api/daily.
//   - WebSocket play channel: /ws.
//
// Notes:
//   - Every game request runs inside a player session. Sessions are
//     identified by a signed token (cookie or bearer) and own one
//     *game.Engine held in the session store.
//   - Nothing is persisted; restarting the process forgets all sessions.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Server bundles router, session store, and word catalog.
type Server struct {
	r       *chi.Mux
	srv     *http.Server
	cfg     *config.Config
	catalog *words.Catalog
	store   store.Store
	daily   *dailyServer
	now     func() time.Time

	sweepMu   sync.Mutex // guards nextSweep
	nextSweep time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, catalog *words.Catalog, st store.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		catalog: catalog,
		store:   st,
		now:     time.Now,
	}
	s.srv = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.daily = &dailyServer{
		srv:    s,
		store:  daily.NewStore(),
		secret: cfg.DailySecret,
		active: make(map[string]*dailyGame),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)   // one log line per request
	s.r.Use(chimw.Recoverer) // recover from panics

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, assets.Web(), "index.html")
	})

	// WebSocket connections are long-lived: no handler timeout, no JSON header.
	s.r.With(s.withSession).Get("/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses
		r.Use(corsFrom(cfg.ClientOrigin))      // credentials-friendly CORS

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
		})
		r.Get("/api/themes", s.handleThemes)

		r.Route("/api/game", func(r chi.Router) {
			r.Use(s.withSession)
			r.Post("/new", s.handleNewGame)
			r.Post("/restart", s.handleRestart)
			r.Post("/reset", s.handleReset)
			r.Post("/guess", s.handleGuess)
			r.Get("/state", s.handleState)
		})

		r.Route("/api/daily", func(r chi.Router) {
			r.With(s.withSession).Post("/new", s.daily.handleNew)
			r.Get("/leaderboard", s.daily.handleLeaderboard)
		})

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on the configured address until Shutdown is called.
// Expired sessions are swept in the background until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweepSessions(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, waiting at most 10 seconds.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
