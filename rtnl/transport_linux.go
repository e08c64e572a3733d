//go:build linux

package rtnl

import (
	"fmt"
	"log/slog"
	"syscall"
	"time"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// Conn is a NETLINK_ROUTE socket. The socket is opened and bound through
// github.com/mdlayher/netlink, but datagrams are pushed through its raw
// connection so that our hand crafted messages go out untouched: the
// library's Send would otherwise rewrite sequence numbers and port IDs.
type Conn struct {
	c  *netlink.Conn
	rc syscall.RawConn
}

// Dial opens a new rtnetlink socket. The caller owns the returned Conn and
// must Close it.
func Dial(conf *Config) (*Conn, error) {
	if conf == nil {
		conf = &DefaultConfig
	}

	c, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't open a rtnetlink socket: %w", err)
	}

	// For enhanced error messages from the kernel, it is recommended to set
	// option `NETLINK_EXT_ACK`, which is supported since 4.12 kernel. If not
	// supported, `unix.ENOPROTOOPT` is returned.
	if conf.ExtendedAck {
		if err := c.SetOption(netlink.ExtendedAcknowledge, true); err != nil {
			slog.Warn("could not set option ExtendedAcknowledge", "err", err)
		}
	}

	if conf.RecvBufferSize > 0 {
		if err := c.SetReadBuffer(conf.RecvBufferSize); err != nil {
			slog.Warn("could not set the socket's receive buffer", "size", conf.RecvBufferSize, "err", err)
		}
	}

	rc, err := c.SyscallConn()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("couldn't get the raw socket: %w", err)
	}

	return &Conn{c: c, rc: rc}, nil
}

// Send writes b to the kernel (port ID 0) as a single datagram.
func (c *Conn) Send(b []byte) error {
	var serr error
	err := c.rc.Write(func(fd uintptr) bool {
		serr = unix.Sendto(int(fd), b, 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK})
		return serr != unix.EAGAIN
	})
	if err != nil {
		return err
	}
	return serr
}

// Receive reads a single datagram into b. The datagram is peeked at first
// with MSG_TRUNC so that one not fitting in b is left on the socket and its
// real length reported instead.
func (c *Conn) Receive(b []byte) (int, error) {
	n, err := c.recvfrom(b, unix.MSG_PEEK|unix.MSG_TRUNC)
	if err != nil || n > len(b) {
		return n, err
	}
	return c.recvfrom(b, 0)
}

func (c *Conn) recvfrom(b []byte, flags int) (int, error) {
	var (
		n    int
		rerr error
	)
	err := c.rc.Read(func(fd uintptr) bool {
		n, _, rerr = unix.Recvfrom(int(fd), b, flags)
		return rerr != unix.EAGAIN
	})
	if err != nil {
		return 0, err
	}
	return n, rerr
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.c.SetReadDeadline(t)
}

func (c *Conn) Close() error {
	return c.c.Close()
}
