// Package rest serves the generated artifacts over HTTP.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/halfcourt/internal/api/ws"
	"github.com/fortuna/halfcourt/internal/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server exposes the output directory, summary JSON, and the reload socket.
type Server struct {
	server  *http.Server
	handler *Handler
	log     *zap.Logger
}

// NewServer builds the router. The hub must already be running.
func NewServer(cfg config.Config, hub *ws.Hub, log *zap.Logger) *Server {
	handler := NewHandler(cfg, log)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware(log))
	router.Use(LoggingMiddleware(log))
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	router.HandleFunc("/", handler.Index).Methods("GET")
	router.HandleFunc("/ws/reload", hub.Handle)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/plays", handler.GetPlays).Methods("GET")
	api.HandleFunc("/summary", handler.GetSummary).Methods("GET")

	router.HandleFunc("/charts/{name}", handler.GetChart).Methods("GET")
	router.HandleFunc("/plays.csv", handler.GetPlaysCSV).Methods("GET")

	return &Server{
		handler: handler,
		log:     log,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Port),
			Handler: router,
		},
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("serving artifacts", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
