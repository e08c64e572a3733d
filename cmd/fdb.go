package main

import (
	"fmt"

	"github.com/scitags/netdev-go/api"
	"github.com/scitags/netdev-go/rtnl"
	"github.com/spf13/cobra"
)

var fdbCmd = &cobra.Command{
	Use:   "fdb",
	Short: "Dump the bridges' forwarding database.",
	Args:  cobra.NoArgs,
	RunE:  fdb,
}

func fdb(cmd *cobra.Command, args []string) error {
	var entries []rtnl.FDBEntry
	if err := withClient(func(c *rtnl.Client) (err error) {
		entries, err = c.ListFDB()
		return err
	}); err != nil {
		return err
	}

	infos := api.NewFDBInfos(entries)
	if jsonFlag {
		return printJSON(infos)
	}

	for _, info := range infos {
		fmt.Printf("%s dev %s", info.Address, info.Destination)
		if info.Vlan != 0 {
			fmt.Printf(" vlan %d", info.Vlan)
		}
		fmt.Printf(" state %#x\n", info.State)
	}

	return nil
}
