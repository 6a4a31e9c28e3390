// Package web exposes the registries and services over HTTP and pushes live
// events to websocket clients.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/samber/lo"

	"sportspulse/internal/config"
	"sportspulse/internal/domain"
)

type MatchStore interface {
	Get(id string) (domain.Match, error)
	All() []domain.Match
	Live() []domain.Match
}

type ArticleStore interface {
	Get(id int64) (domain.Article, error)
	All() []domain.Article
	Featured() []domain.Article
	ByCategory(category string) []domain.Article
}

type LiveScores interface {
	Simulate(ctx context.Context, id string) (domain.Match, error)
	Update(ctx context.Context, id string, patch domain.MatchPatch) (domain.Match, error)
}

type News interface {
	Add(ctx context.Context, article domain.Article) (domain.Article, error)
}

type Preferences interface {
	DarkMode(ctx context.Context, clientID string) (bool, error)
	ToggleDarkMode(ctx context.Context, clientID string) (bool, error)
	SetDarkMode(ctx context.Context, clientID string, enabled bool) error
}

type Newsletter interface {
	Subscribe(ctx context.Context, email string) (bool, error)
	Subscribers(ctx context.Context) ([]domain.Subscriber, error)
}

type Deps struct {
	Matches     MatchStore
	Articles    ArticleStore
	LiveScores  LiveScores
	News        News
	Preferences Preferences
	Newsletter  Newsletter
	Hub         *Hub
}

type Server struct {
	cfg        config.HTTPConfig
	deps       Deps
	upgrader   websocket.Upgrader
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(cfg config.HTTPConfig, deps Deps, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger.With("component", "http"),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler builds the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/matches", s.handleListMatches).Methods(http.MethodGet)
	api.HandleFunc("/matches/live", s.handleLiveMatches).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}", s.handleUpdateMatch).Methods(http.MethodPatch)
	api.HandleFunc("/matches/{id}/simulate", s.handleSimulateMatch).Methods(http.MethodPost)

	api.HandleFunc("/news", s.handleListNews).Methods(http.MethodGet)
	api.HandleFunc("/news", s.handleCreateNews).Methods(http.MethodPost)
	api.HandleFunc("/news/{id}", s.handleGetNews).Methods(http.MethodGet)

	api.HandleFunc("/preferences/{client_id}/dark-mode", s.handleGetDarkMode).Methods(http.MethodGet)
	api.HandleFunc("/preferences/{client_id}/dark-mode", s.handleSetDarkMode).Methods(http.MethodPut)
	api.HandleFunc("/preferences/{client_id}/dark-mode/toggle", s.handleToggleDarkMode).Methods(http.MethodPost)

	api.HandleFunc("/newsletter", s.handleListSubscribers).Methods(http.MethodGet)
	api.HandleFunc("/newsletter", s.handleSubscribe).Methods(http.MethodPost)

	router.HandleFunc("/ws", s.handleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(router)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return lo.Contains(s.cfg.AllowedOrigins, "*") || lo.Contains(s.cfg.AllowedOrigins, origin)
}
