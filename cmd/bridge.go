package main

import (
	"fmt"
	"log/slog"

	"github.com/scitags/netdev-go/rtnl"
	"github.com/spf13/cobra"
)

var (
	bridgeCmd = &cobra.Command{
		Use:   "bridge",
		Short: "Create bridges and manage their ports.",
	}

	bridgeCreateCmd = &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new bridge.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *rtnl.Client) error {
				if err := c.CreateBridge(args[0]); err != nil {
					return fmt.Errorf("error creating bridge %s: %w", args[0], err)
				}
				slog.Info("created bridge", "name", args[0])
				return nil
			})
		},
	}

	bridgeJoinCmd = &cobra.Command{
		Use:   "join <bridge> <port>",
		Short: "Attach an interface to a bridge.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *rtnl.Client) error {
				if err := c.JoinBridge(args[0], args[1]); err != nil {
					return fmt.Errorf("error attaching %s to %s: %w", args[1], args[0], err)
				}
				slog.Info("attached port", "bridge", args[0], "port", args[1])
				return nil
			})
		},
	}

	bridgeLeaveCmd = &cobra.Command{
		Use:   "leave <port>",
		Short: "Detach an interface from its bridge.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *rtnl.Client) error {
				if err := c.JoinBridge("", args[0]); err != nil {
					return fmt.Errorf("error detaching %s: %w", args[0], err)
				}
				slog.Info("detached port", "port", args[0])
				return nil
			})
		},
	}
)

func init() {
	bridgeCmd.AddCommand(bridgeCreateCmd)
	bridgeCmd.AddCommand(bridgeJoinCmd)
	bridgeCmd.AddCommand(bridgeLeaveCmd)
}
