package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/handler"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// StatusServer serves the status API. It implements workers.Worker.
type StatusServer struct {
	address string
	handler http.Handler

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	done     chan struct{}

	logger *logger.Logger
}

func NewStatusServer(handlers *handler.Handlers, cfg config.ClientStatus, logger *logger.Logger) (*StatusServer, error) {
	logger.Info().Msg("creating new status server...")
	if handlers == nil || handlers.HTTP == nil || cfg.Address == "" {
		return nil, errNoServersAreCreated
	}

	return &StatusServer{
		address: cfg.Address,
		handler: handlers.HTTP.Init(),
		logger:  logger,
	}, nil
}

// Start binds the listener synchronously so a busy port is reported to the
// caller, then serves in the background.
func (s *StatusServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errAlreadyStarted
	}

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("status server listen on %s: %w", s.address, err)
	}

	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.done = make(chan struct{})

	go func(srv *http.Server, done chan struct{}) {
		defer close(done)
		s.logger.Info().Str("address", listener.Addr().String()).Msg("Launching HTTP status server")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Err(err).Msg("HTTP status server Serve")
		}
	}(s.server, s.done)

	return nil
}

// Stop shuts the server down gracefully and waits for Serve to return.
func (s *StatusServer) Stop() {
	s.mu.Lock()
	srv, done := s.server, s.done
	s.server, s.listener, s.done = nil, nil, nil
	s.mu.Unlock()

	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		// ошибки закрытия Listener
		s.logger.Err(err).Msg("HTTP status server Shutdown")
	}
	<-done
	s.logger.Info().Msg("HTTP status server Shutdown gracefully")
}

// Addr returns the bound address, or "" when the server is not running.
func (s *StatusServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
