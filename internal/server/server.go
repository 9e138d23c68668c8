package server

import (
	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the metrics server. It returns ErrNoServersAreCreated
// when no address is configured.
func NewServer(collector *metrics.Collector, cfg config.Metrics, logger *logger.Logger) (Server, error) {
	if cfg.Address == "" {
		return nil, ErrNoServersAreCreated
	}

	logger.Info().Str("address", cfg.Address).Msg("creating metrics server...")

	return &server{
		httpServer: newHTTPServer(newRouter(collector, logger), cfg.Address, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	s.logger.Info().Msg("Launching HTTP server")
	s.httpServer.RunServer()
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")
}
