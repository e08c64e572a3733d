package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/procfs"
)

// Server exposes link and FDB dumps over HTTP together with the client's
// metrics.
type Server struct {
	Config

	server *echo.Echo
	lister Lister
}

func (s *Server) String() string {
	return "api"
}

func New(conf *Config, lister Lister) (*Server, error) {
	if conf == nil {
		conf = &DefaultConfig
	}

	s := &Server{Config: *conf, lister: lister, server: echo.New()}

	// Create a non-global registry.
	reg := prometheus.NewRegistry()
	if r, ok := lister.(registerer); ok {
		if err := r.Register(reg); err != nil {
			return nil, fmt.Errorf("error registering the metrics: %w", err)
		}
	}

	// Configure the methods for each path
	s.server.GET("/", s.handleRoot)
	s.server.GET("/links", s.handleLinks)
	s.server.GET("/fdb", s.handleFDB)
	s.server.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Prevent the banner from showing up in the log
	s.server.HideBanner = true
	s.server.HidePort = true

	return s, nil
}

func (s *Server) netDev() (procfs.NetDev, error) {
	return NetDev(s.ProcPath)
}

// NetDev reads the per-interface counters in /proc/net/dev under procPath,
// which defaults to procfs.DefaultMountPoint when empty.
func NetDev(procPath string) (procfs.NetDev, error) {
	if procPath == "" {
		procPath = procfs.DefaultMountPoint
	}

	fs, err := procfs.NewFS(procPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialise the procfs filesystem: %w", err)
	}
	return fs.NetDev()
}

func (s *Server) Run(done <-chan struct{}) {
	slog.Debug("running the api server", "address", s.BindAddress, "port", s.BindPort)

	go func() {
		if err := s.server.Start(fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)); err != http.ErrServerClosed {
			slog.Error("couldn't start the API server", "err", err)
		}
	}()

	// Simply wait until we're done
	<-done
	slog.Debug("cleanly exiting the api server")
}

func (s *Server) Cleanup() error {
	slog.Debug("cleaning up the api server")
	if err := s.server.Shutdown(context.TODO()); err != nil {
		return fmt.Errorf("error shutting down the API server: %w", err)
	}
	return nil
}
