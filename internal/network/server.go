package network

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Options tune the WebSocket endpoint.
type Options struct {
	// AllowedOrigins lists browser origins accepted by the upgrader. Empty accepts any.
	AllowedOrigins []string
	RatePerSecond  float64
	RateBurst      int
}

// Server serves the WebSocket endpoint and whatever HTTP routes are mounted on
// its router, and owns the hub behind them.
type Server struct {
	hub      *Hub
	router   *chi.Mux
	upgrader websocket.Upgrader
	limit    rate.Limit
	burst    int
}

func NewServer(handler EventHandler, opts Options) *Server {
	s := &Server{
		hub:    NewHub(handler),
		router: chi.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(opts.AllowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		limit: rate.Limit(opts.RatePerSecond),
		burst: opts.RateBurst,
	}
	if s.limit <= 0 {
		s.limit = rate.Inf
	}
	if s.burst <= 0 {
		s.burst = 1
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	s.router.Get("/ws", s.wsHandler)
	return s
}

// Router exposes the chi router so callers can mount /health and friends.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start runs the hub until ctx is cancelled. Listen calls it; tests that serve
// the router themselves call it directly.
func (s *Server) Start(ctx context.Context) {
	go s.hub.Run(ctx)
}

// Listen starts the hub and serves HTTP on address until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, address string) error {
	s.Start(ctx)

	srv := &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("addr", address).Msg("listening for websocket connections on /ws")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	client := newClient(conn, s.hub, s.limit, s.burst)
	if !s.hub.join(client) {
		_ = conn.Close()
		return
	}
	log.Debug().Str("conn", client.ID()).Str("remote", client.RemoteAddr()).Msg("client connected")

	go client.writeLoop()
	go client.readLoop()
}

// originChecker accepts requests without an Origin header, since those do not
// come from a browser.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.ToLower(o), "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(strings.ToLower(origin), "/")]
		return ok
	}
}
