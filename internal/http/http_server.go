package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/hashburst.net/internal/config"
	"gitlab.com/hashburst.net/internal/core/ports/primary"
	"gitlab.com/hashburst.net/internal/handlers/batch"
)

type Server struct {
	router *mux.Router
	srv    *http.Server
	cfg    *config.ServerConfig
	logger primary.Logger

	batchHandler *batch.BatchHandler
}

func NewServer(cfg *config.ServerConfig, batchHandler *batch.BatchHandler, logger primary.Logger) *Server {
	return &Server{
		cfg:          cfg,
		batchHandler: batchHandler,
		logger:       logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	s.batchHandler.RegisterRoutes(r)
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.srv = srv

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr, "service", s.cfg.ServiceName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
