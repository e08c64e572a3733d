package rtnl

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

func init() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelError,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			// Remove the directory from the source's filename.
			if a.Key == slog.SourceKey {
				source := a.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return a
		},
	}))
	slog.SetDefault(logger)
}

var errNoMoreReplies = errors.New("no more scripted replies")

// fakeTransport records what's sent and replays scripted datagrams.
type fakeTransport struct {
	sent    [][]byte
	replies [][]byte
	reads   int
	peeks   int

	deadline time.Time
	closed   bool
}

func (t *fakeTransport) Send(b []byte) error {
	t.sent = append(t.sent, append([]byte{}, b...))
	return nil
}

// Receive behaves like Conn: a datagram that doesn't fit in b stays queued
// and its full length is reported.
func (t *fakeTransport) Receive(b []byte) (int, error) {
	if t.reads >= len(t.replies) {
		return 0, errNoMoreReplies
	}
	reply := t.replies[t.reads]
	if len(reply) > len(b) {
		t.peeks++
		return len(reply), nil
	}
	n := copy(b, reply)
	t.reads++
	return n, nil
}

func (t *fakeTransport) SetReadDeadline(d time.Time) error {
	t.deadline = d
	return nil
}

func (t *fakeTransport) Close() error {
	t.closed = true
	return nil
}

type fakeResolver map[string]int

func (r fakeResolver) IndexByName(name string) (int, error) {
	idx, ok := r[name]
	if !ok {
		return 0, fmt.Errorf("no such interface %q", name)
	}
	return idx, nil
}

func (r fakeResolver) NameByIndex(index int) (string, error) {
	for name, idx := range r {
		if idx == index {
			return name, nil
		}
	}
	return "", fmt.Errorf("no interface with index %d", index)
}

// rawMessage crafts a reply message as the kernel would.
func rawMessage(typ uint16, body []byte, attrs ...Attribute) []byte {
	b := NewBuilder(typ, 0, len(body), 0)
	copy(b.Body(), body)
	for _, a := range attrs {
		b.AddAttribute(a.Type, a.Data)
	}
	return b.Bytes()
}

func doneMessage() []byte {
	return rawMessage(3, make([]byte, 4))
}

func errorMessage(code int32) []byte {
	body := make([]byte, 4+nlmsgHeaderLen)
	native.PutUint32(body[0:4], uint32(code))
	return rawMessage(2, body)
}

func concat(msgs ...[]byte) []byte {
	out := []byte{}
	for _, m := range msgs {
		out = append(out, m...)
	}
	return out
}

func testClient(t *fakeTransport, conf *Config) *Client {
	if conf == nil {
		c := DefaultConfig
		c.ReadTimeout = 0
		conf = &c
	}
	return NewClient(t, fakeResolver{"eth0": 2, "eth1": 3, "br0": 7}, conf)
}
