package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/scitags/netdev-go/rtnl"
)

// withClient opens a rtnetlink client for the duration of f.
func withClient(f func(c *rtnl.Client) error) error {
	c, err := rtnl.New(conf.Netlink)
	if err != nil {
		return fmt.Errorf("error setting up the rtnetlink client: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("error closing the rtnetlink client", "err", err)
		}
	}()

	return f(c)
}

func printJSON(v any) error {
	m, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshalling the output: %w", err)
	}
	fmt.Println(string(m))
	return nil
}
