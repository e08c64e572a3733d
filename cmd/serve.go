package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/scitags/netdev-go/api"
	"github.com/scitags/netdev-go/rtnl"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the link table, the FDB and the client's metrics over HTTP.",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	return withClient(func(c *rtnl.Client) error {
		s, err := api.New(conf.Api, c)
		if err != nil {
			return fmt.Errorf("error setting up the api: %w", err)
		}
		defer func() {
			if err := s.Cleanup(); err != nil {
				slog.Error("error cleaning up the api", "err", err)
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		doneChan := make(chan struct{})
		go func() {
			sig := <-sigChan
			slog.Info("caught signal, shutting down", "signal", sig)
			close(doneChan)
		}()

		slog.Info("serving", "address", conf.Api.BindAddress, "port", conf.Api.BindPort)
		s.Run(doneChan)

		return nil
	})
}
