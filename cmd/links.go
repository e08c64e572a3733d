package main

import (
	"fmt"

	"github.com/prometheus/procfs"
	"github.com/scitags/netdev-go/api"
	"github.com/scitags/netdev-go/rtnl"
	"github.com/spf13/cobra"
)

var (
	statsFlag bool

	linksCmd = &cobra.Command{
		Use:   "links",
		Short: "Dump the link table.",
		Args:  cobra.NoArgs,
		RunE:  links,
	}
)

func init() {
	linksCmd.Flags().BoolVar(&statsFlag, "stats", false, "include rx/tx counters from /proc/net/dev")
}

func links(cmd *cobra.Command, args []string) error {
	var ls []rtnl.Link
	if err := withClient(func(c *rtnl.Client) (err error) {
		ls, err = c.ListLinks()
		return err
	}); err != nil {
		return err
	}

	var netDev procfs.NetDev
	if statsFlag {
		var err error
		if netDev, err = api.NetDev(conf.Api.ProcPath); err != nil {
			return fmt.Errorf("error reading the interface statistics: %w", err)
		}
	}

	infos := api.NewLinkInfos(ls, netDev)
	if jsonFlag {
		return printJSON(infos)
	}

	for _, info := range infos {
		state := "DOWN"
		if info.Up {
			state = "UP"
		}
		fmt.Printf("%d: %s %s", info.Index, info.Name, state)
		if info.Master != 0 {
			fmt.Printf(" master %d", info.Master)
		}
		if info.Stats != nil {
			fmt.Printf(" rx %d/%d tx %d/%d", info.Stats.RxBytes, info.Stats.RxPackets, info.Stats.TxBytes, info.Stats.TxPackets)
		}
		fmt.Println()
	}

	return nil
}
