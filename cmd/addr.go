package main

import (
	"fmt"
	"log/slog"
	"net/netip"

	"github.com/scitags/netdev-go/rtnl"
	"github.com/spf13/cobra"
)

var (
	addrCmd = &cobra.Command{
		Use:   "addr",
		Short: "Manage interface addresses.",
	}

	addrAddCmd = &cobra.Command{
		Use:   "add <address/prefix> <device>",
		Short: "Assign an IPv4 address to a device.",
		Args:  cobra.ExactArgs(2),
		RunE:  addrAdd,
	}

	upCmd = &cobra.Command{
		Use:   "up <device>",
		Short: "Bring a device up.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *rtnl.Client) error {
				if err := c.BringUp(args[0]); err != nil {
					return fmt.Errorf("error bringing %s up: %w", args[0], err)
				}
				slog.Info("brought device up", "device", args[0])
				return nil
			})
		},
	}
)

func init() {
	addrCmd.AddCommand(addrAddCmd)
}

func addrAdd(cmd *cobra.Command, args []string) error {
	prefix, err := netip.ParsePrefix(args[0])
	if err != nil {
		return fmt.Errorf("error parsing %q: %w", args[0], err)
	}

	return withClient(func(c *rtnl.Client) error {
		if err := c.AssignAddress(prefix.Addr(), prefix.Bits(), args[1]); err != nil {
			return fmt.Errorf("error assigning %s to %s: %w", prefix, args[1], err)
		}
		slog.Info("assigned address", "address", prefix, "device", args[1])
		return nil
	})
}
