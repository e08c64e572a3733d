package rtnl

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrEmptyRead is returned when the socket hands back a zero-length
	// datagram in the middle of a dump.
	ErrEmptyRead = errors.New("empty read from the netlink socket")

	// ErrTooManyReads is returned when a dump doesn't finish within the
	// configured number of reads.
	ErrTooManyReads = errors.New("dump didn't terminate within the allowed reads")

	// ErrTruncated is returned when a datagram keeps overflowing the receive
	// buffer even after growing it.
	ErrTruncated = errors.New("datagram larger than the receive buffer")

	// ErrNoAck is returned when the kernel's reply to a request carries no
	// acknowledgement.
	ErrNoAck = errors.New("no acknowledgement in the kernel's reply")
)

// OpError reports a request the kernel answered with a non-zero errno.
type OpError struct {
	Op  string
	Err syscall.Errno
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func newOpError(op string, code int32) *OpError {
	return &OpError{Op: op, Err: syscall.Errno(-code)}
}
