//go:build !linux

package rtnl

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("rtnetlink is only available on linux")

type Conn struct{}

func Dial(conf *Config) (*Conn, error) {
	return nil, errUnsupported
}

func (c *Conn) Send(b []byte) error { return errUnsupported }
func (c *Conn) Receive(b []byte) (int, error) { return 0, errUnsupported }
func (c *Conn) SetReadDeadline(t time.Time) error { return errUnsupported }
func (c *Conn) Close() error { return nil }
