package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/pkg/encoding"
)

// Config holds viewer server configuration
type Config struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// Encoding names the frame codec: msgpack (binary) or json (text).
	Encoding string `yaml:"encoding"`

	MaxClients   int           `yaml:"max_clients"`
	QueueSize    int           `yaml:"queue_size"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:8080",
		Encoding:     "msgpack",
		MaxClients:   64,
		QueueSize:    16,
		WriteTimeout: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	if _, err := encoding.Lookup(c.Encoding); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" || c.MaxClients < 0 || c.QueueSize < 0 || c.WriteTimeout < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Server exposes the hub over HTTP: /ws streams frames, /healthz answers
// liveness probes.
type Server struct {
	config Config
	hub    *Hub
	logger log.Log

	http     *http.Server
	listener net.Listener
	running  atomic.Bool
}

func NewServer(config Config, hub *Hub, logger log.Log) *Server {
	if logger == nil {
		logger = log.Nop()
	}
	s := &Server{
		config: config,
		hub:    hub,
		logger: logger.With(log.String("component", "server")),
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.http = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start binds the listener and serves in the background.
func (s *Server) Start(_ context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		s.running.Store(false)
		s.logger.Error("Failed to create listener", log.Error(err))
		return errors.Join(ErrListenerFailed, err)
	}
	s.listener = listener

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed", log.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop disconnects viewers and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrServerNotRunning
	}
	s.logger.Info("Stopping server")
	s.hub.Close()
	err := s.http.Shutdown(ctx)
	s.logger.Info("Server stopped")
	return err
}
