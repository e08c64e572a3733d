package rtnl

import "time"

// Transport moves raw netlink datagrams to and from the kernel. Send and
// Receive block; Receive honours the deadline set through SetReadDeadline.
//
// Receive returns the full length of the next datagram. When that exceeds
// len(b) nothing is consumed: the datagram stays queued so that it can be
// read again with a large enough buffer.
type Transport interface {
	Send(b []byte) error
	Receive(b []byte) (int, error)
	SetReadDeadline(t time.Time) error
	Close() error
}
