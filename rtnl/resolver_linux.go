//go:build linux

package rtnl

import (
	"fmt"

	jrtnl "github.com/jsimonetti/rtnetlink/v2/rtnl"
)

// RtnlResolver looks interfaces up over a rtnetlink connection of its own.
type RtnlResolver struct {
	conn *jrtnl.Conn
}

func NewRtnlResolver() (*RtnlResolver, error) {
	conn, err := jrtnl.Dial(nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't open a rtnl connection: %w", err)
	}
	return &RtnlResolver{conn: conn}, nil
}

func (r *RtnlResolver) IndexByName(name string) (int, error) {
	links, err := r.conn.Links()
	if err != nil {
		return 0, fmt.Errorf("error retrieving links: %w", err)
	}

	for _, link := range links {
		if link.Name == name {
			return link.Index, nil
		}
	}

	return 0, fmt.Errorf("no such interface %q", name)
}

func (r *RtnlResolver) NameByIndex(index int) (string, error) {
	link, err := r.conn.LinkByIndex(index)
	if err != nil {
		return "", fmt.Errorf("error retrieving link %d: %w", index, err)
	}
	return link.Name, nil
}

func (r *RtnlResolver) Close() error {
	return r.conn.Close()
}
