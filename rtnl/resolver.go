package rtnl

import (
	"fmt"
	"net"
)

const (
	NetResolverName  = "net"
	RtnlResolverName = "rtnl"
)

// Resolver translates between interface names and their indices.
type Resolver interface {
	IndexByName(name string) (int, error)
	NameByIndex(index int) (string, error)
}

// NetResolver relies on the standard library's interface lookups, which are
// the counterpart of if_nametoindex(3) and if_indextoname(3).
type NetResolver struct{}

func (NetResolver) IndexByName(name string) (int, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return 0, fmt.Errorf("could not get interface id: %w", err)
	}
	return iface.Index, nil
}

func (NetResolver) NameByIndex(index int) (string, error) {
	iface, err := net.InterfaceByIndex(index)
	if err != nil {
		return "", fmt.Errorf("could not get interface name: %w", err)
	}
	return iface.Name, nil
}

func newResolver(conf *Config) (Resolver, error) {
	switch conf.Resolver {
	case "", NetResolverName:
		return NetResolver{}, nil
	case RtnlResolverName:
		r, err := NewRtnlResolver()
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown resolver %q", conf.Resolver)
	}
}
