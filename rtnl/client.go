package rtnl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mdlayher/netlink"
	"github.com/prometheus/client_golang/prometheus"
)

// Client issues rtnetlink requests over a single socket. Exchanges are
// serialised so that a dump's replies are never consumed by a concurrent
// request; this is the only protection against interleaving given sequence
// numbers aren't checked.
type Client struct {
	Config

	mu       sync.Mutex
	t        Transport
	resolver Resolver
	recvBuf  []byte
	seq      uint32
	closers  []io.Closer

	m *metrics
}

func (c *Client) String() string {
	return "rtnl client"
}

// New opens a rtnetlink socket and a resolver as described by conf. The
// returned client must be closed.
func New(conf *Config) (*Client, error) {
	if conf == nil {
		conf = &DefaultConfig
	}

	conn, err := Dial(conf)
	if err != nil {
		return nil, err
	}

	r, err := newResolver(conf)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("couldn't set up the resolver: %w", err)
	}

	c := NewClient(conn, r, conf)
	c.closers = append(c.closers, conn)
	if closer, ok := r.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}

	return c, nil
}

// NewClient builds a client on top of an existing transport and resolver.
// Their lifecycle stays with the caller.
func NewClient(t Transport, r Resolver, conf *Config) *Client {
	if conf == nil {
		conf = &DefaultConfig
	}

	bufSize := conf.RecvBufferSize
	switch {
	case bufSize <= 0:
		bufSize = defaultRecvBufferSize
	case bufSize < minRecvBufferSize:
		slog.Warn("raising the receive buffer size", "configured", bufSize, "size", minRecvBufferSize)
		bufSize = minRecvBufferSize
	}

	return &Client{
		Config:   *conf,
		t:        t,
		resolver: r,
		recvBuf:  make([]byte, bufSize),
		m:        newMetrics(),
	}
}

// Register exposes the client's metrics through reg.
func (c *Client) Register(reg prometheus.Registerer) error {
	return c.m.register(reg)
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := []error{}
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	c.closers = nil

	return errors.Join(errs...)
}

func (c *Client) send(b *Builder) error {
	c.seq++
	b.SetSequence(c.seq)

	h := b.Header()
	slog.Log(context.Background(), LevelTrace, "sending message",
		"type", msgTypeName[uint16(h.Type)], "flags", h.Flags, "seq", h.Sequence, "len", h.Length)

	return c.t.Send(b.Bytes())
}

// receive reads the next datagram into the receive buffer, growing it when
// the datagram doesn't fit.
func (c *Client) receive(op string) (int, error) {
	n, err := c.t.Receive(c.recvBuf)
	if err != nil || n <= len(c.recvBuf) {
		return n, err
	}

	slog.Debug("growing the receive buffer", "op", op, "size", len(c.recvBuf), "datagram", n)
	c.recvBuf = make([]byte, align(n))

	if n, err = c.t.Receive(c.recvBuf); err != nil {
		return 0, err
	}
	if n > len(c.recvBuf) {
		return 0, fmt.Errorf("%s: %w", op, ErrTruncated)
	}
	return n, nil
}

func (c *Client) armDeadline() error {
	if c.ReadTimeout <= 0 {
		return nil
	}
	return c.t.SetReadDeadline(time.Now().Add(time.Duration(c.ReadTimeout) * time.Millisecond))
}

// request sends a message which expects no data back. When acknowledgements
// are enabled the kernel's verdict is waited for and returned.
func (c *Client) request(op string, b *Builder) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.m.request(op, err) }()

	if c.Acknowledge {
		b.SetFlags(b.Header().Flags | netlink.Acknowledge)
	}

	if err := c.send(b); err != nil {
		return fmt.Errorf("error sending the %s request: %w", op, err)
	}

	if !c.Acknowledge {
		return nil
	}

	return c.waitAck(op)
}

func (c *Client) waitAck(op string) error {
	if err := c.armDeadline(); err != nil {
		return fmt.Errorf("error setting the read deadline: %w", err)
	}

	n, err := c.receive(op)
	if err != nil {
		return fmt.Errorf("error reading the %s acknowledgement: %w", op, err)
	}

	for _, m := range ParseMessages(c.recvBuf[:n]) {
		code, ok := errorCode(m)
		if !ok {
			slog.Debug("ignoring unexpected message", "op", op, "type", m.Header.Type)
			continue
		}
		if code != 0 {
			return newOpError(op, code)
		}
		return nil
	}

	return fmt.Errorf("%s: %w", op, ErrNoAck)
}

// dump sends a NLM_F_DUMP request and hands every message of the multipart
// reply to fn until NLMSG_DONE shows up.
func (c *Client) dump(op string, b *Builder, fn func(m netlink.Message)) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.m.request(op, err) }()

	if err := c.send(b); err != nil {
		return fmt.Errorf("error sending the %s request: %w", op, err)
	}

	if err := c.armDeadline(); err != nil {
		return fmt.Errorf("error setting the read deadline: %w", err)
	}

	for reads := 0; ; reads++ {
		if c.MaxReads > 0 && reads >= c.MaxReads {
			return fmt.Errorf("%s: %w", op, ErrTooManyReads)
		}

		n, err := c.receive(op)
		if err != nil {
			return fmt.Errorf("error reading the %s reply: %w", op, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", op, ErrEmptyRead)
		}
		c.m.Reads.WithLabelValues(op).Inc()

		msgs := ParseMessages(c.recvBuf[:n])
		slog.Log(context.Background(), LevelTrace, "read dump datagram", "op", op, "n", n, "nMsgs", len(msgs))

		for _, m := range msgs {
			switch m.Header.Type {
			case netlink.Done:
				// Since v4.x NLMSG_DONE carries the dump's status too.
				if len(m.Data) >= sizeofErrorCode {
					if code := int32(native.Uint32(m.Data[0:4])); code < 0 {
						return newOpError(op, code)
					}
				}
				return nil
			case netlink.Error:
				if code, ok := errorCode(m); ok && code != 0 {
					return newOpError(op, code)
				}
				continue
			}

			c.m.Messages.WithLabelValues(op).Inc()
			fn(m)
		}
	}
}
