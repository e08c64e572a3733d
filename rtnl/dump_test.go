package rtnl

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/netlink"
)

func linkMessage(index int, flags uint32, attrs ...Attribute) []byte {
	body := make([]byte, sizeofIfInfoMsg)
	body[0] = AF_PACKET
	native.PutUint32(body[4:8], uint32(index))
	native.PutUint32(body[8:12], flags)
	return rawMessage(RTM_NEWLINK, body, attrs...)
}

func nameAttr(name string) Attribute {
	return Attribute{Type: IFLA_IFNAME, Data: []byte(name + "\x00")}
}

func neighMessage(index int, state uint16, attrs ...Attribute) []byte {
	body := make([]byte, sizeofNdMsg)
	body[0] = AF_BRIDGE
	native.PutUint32(body[4:8], uint32(index))
	native.PutUint16(body[8:10], state)
	return rawMessage(RTM_NEWNEIGH, body, attrs...)
}

func TestDumpTermination(t *testing.T) {
	ft := &fakeTransport{replies: [][]byte{
		concat(linkMessage(1, IFF_UP, nameAttr("lo")), linkMessage(2, 0, nameAttr("eth0")), doneMessage()),
		linkMessage(3, 0, nameAttr("never-read")),
	}}

	names, err := testClient(ft, nil).ListInterfaces()
	if err != nil {
		t.Fatalf("error listing interfaces: %v", err)
	}

	if want := []string{"lo", "eth0"}; !cmp.Equal(names, want) {
		t.Errorf("got %v; want %v", names, want)
	}
	if ft.reads != 1 {
		t.Errorf("got %d reads; want 1", ft.reads)
	}
}

func TestDumpMultipleDatagrams(t *testing.T) {
	ft := &fakeTransport{replies: [][]byte{
		linkMessage(1, IFF_UP, nameAttr("lo")),
		concat(linkMessage(7, 0, nameAttr("br0"), Attribute{Type: IFLA_MASTER, Data: wire{}.u32(0)}), linkMessage(8, 0)),
		concat(linkMessage(9, IFF_UP, nameAttr("eth0"), Attribute{Type: IFLA_MASTER, Data: wire{}.u32(7)}), doneMessage()),
	}}

	links, err := testClient(ft, nil).ListLinks()
	if err != nil {
		t.Fatalf("error listing links: %v", err)
	}

	want := []Link{
		{Index: 1, Name: "lo", Flags: IFF_UP},
		{Index: 7, Name: "br0"},
		{Index: 8},
		{Index: 9, Name: "eth0", Flags: IFF_UP, Master: 7},
	}
	if !cmp.Equal(links, want) {
		t.Errorf("got %+v; want %+v", links, want)
	}
	if ft.reads != 3 {
		t.Errorf("got %d reads; want 3", ft.reads)
	}
}

func TestDumpSkipsMalformed(t *testing.T) {
	bad := linkMessage(2, 0, nameAttr("bad0"))
	native.PutUint32(bad[0:4], uint32(len(bad)+64))

	ft := &fakeTransport{replies: [][]byte{
		concat(linkMessage(1, 0, nameAttr("lo")), bad, linkMessage(3, 0, nameAttr("lost"))),
		doneMessage(),
	}}

	names, err := testClient(ft, nil).ListInterfaces()
	if err != nil {
		t.Fatalf("error listing interfaces: %v", err)
	}
	if want := []string{"lo"}; !cmp.Equal(names, want) {
		t.Errorf("got %v; want %v", names, want)
	}
}

func TestDumpRequest(t *testing.T) {
	ft := &fakeTransport{replies: [][]byte{doneMessage(), doneMessage()}}
	c := testClient(ft, nil)

	if _, err := c.ListInterfaces(); err != nil {
		t.Fatalf("error listing interfaces: %v", err)
	}
	if _, err := c.ListFDB(); err != nil {
		t.Fatalf("error listing the fdb: %v", err)
	}

	want := [][]byte{
		wire{}.
			u32(32).u16(RTM_GETLINK).u16(uint16(netlink.Request|netlink.Dump)).u32(1).u32(0).
			u8(AF_PACKET, 0).u16(0).u32(0).u32(0).u32(0),
		wire{}.
			u32(32).u16(RTM_GETNEIGH).u16(uint16(netlink.Request|netlink.Dump)).u32(2).u32(0).
			u8(AF_BRIDGE, 0).u16(0).u32(0).u32(0).u32(0),
	}
	if !cmp.Equal(ft.sent, want) {
		t.Errorf("got\n%v\nwant\n%v", ft.sent, want)
	}
}

func TestListFDB(t *testing.T) {
	lladdr := []byte{0x02, 0x42, 0xac, 0x11, 0x00, 0x02}

	ft := &fakeTransport{replies: [][]byte{
		concat(
			neighMessage(2, 0x80, Attribute{Type: NDA_LLADDR, Data: lladdr}),
			neighMessage(3, 0x40, Attribute{Type: NDA_VLAN, Data: wire{}.u16(10)}),
			neighMessage(2, 0x80, Attribute{Type: NDA_LLADDR, Data: []byte{1, 2, 3, 4, 5, 6, 7, 8}}),
			doneMessage(),
		),
	}}

	entries, err := testClient(ft, nil).ListFDB()
	if err != nil {
		t.Fatalf("error listing the fdb: %v", err)
	}

	want := []FDBEntry{
		{Destination: "eth0", Addr: [6]byte{0x02, 0x42, 0xac, 0x11, 0x00, 0x02}, Index: 2, State: 0x80},
		{Destination: "eth1", Index: 3, State: 0x40, Vlan: 10},
		{Destination: "eth0", Addr: [6]byte{1, 2, 3, 4, 5, 6}, Index: 2, State: 0x80},
	}
	if !cmp.Equal(entries, want) {
		t.Errorf("got %+v; want %+v", entries, want)
	}

	if got := entries[0].HardwareAddr().String(); got != "02:42:ac:11:00:02" {
		t.Errorf("got hardware address %q", got)
	}
}

func TestListFDBUnknownPort(t *testing.T) {
	ft := &fakeTransport{replies: [][]byte{concat(neighMessage(42, 0), doneMessage())}}

	entries, err := testClient(ft, nil).ListFDB()
	if err != nil {
		t.Fatalf("error listing the fdb: %v", err)
	}
	if want := []FDBEntry{{Index: 42}}; !cmp.Equal(entries, want) {
		t.Errorf("got %+v; want %+v", entries, want)
	}
}

func TestDumpErrors(t *testing.T) {
	failedDone := doneMessage()
	native.PutUint32(failedDone[nlmsgHeaderLen:], uint32(0xFFFFFFF0)) // -EBUSY

	tests := map[string]struct {
		replies  [][]byte
		maxReads int
		want     error
	}{
		"kernel error":   {[][]byte{errorMessage(-int32(syscall.EPERM))}, 0, syscall.EPERM},
		"failed done":    {[][]byte{failedDone}, 0, syscall.EBUSY},
		"empty read":     {[][]byte{{}}, 0, ErrEmptyRead},
		"too many reads": {[][]byte{linkMessage(1, 0), linkMessage(2, 0), doneMessage()}, 2, ErrTooManyReads},
		"read error":     {[][]byte{linkMessage(1, 0)}, 0, errNoMoreReplies},
	}

	for name, test := range tests {
		conf := DefaultConfig
		conf.ReadTimeout = 0
		conf.MaxReads = test.maxReads

		ft := &fakeTransport{replies: test.replies}
		_, err := testClient(ft, &conf).ListInterfaces()
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got %v; want %v", name, err, test.want)
		}
	}
}

func TestDumpDeadline(t *testing.T) {
	ft := &fakeTransport{replies: [][]byte{doneMessage()}}
	if _, err := testClient(ft, &DefaultConfig).ListInterfaces(); err != nil {
		t.Fatalf("error listing interfaces: %v", err)
	}
	if ft.deadline.IsZero() {
		t.Errorf("no read deadline was set")
	}
}

// oversizedTransport claims every datagram is larger than the buffer it's
// handed, no matter how large that is.
type oversizedTransport struct {
	fakeTransport
}

func (t *oversizedTransport) Receive(b []byte) (int, error) {
	return len(b) + 1, nil
}

func TestDumpGrowsReceiveBuffer(t *testing.T) {
	conf := DefaultConfig
	conf.ReadTimeout = 0
	conf.RecvBufferSize = 64

	links := [][]byte{}
	want := []string{}
	for i := 0; i < 64; i++ {
		name := fmt.Sprintf("veth%02d-%s", i, strings.Repeat("x", 48))
		links = append(links, linkMessage(i+1, 0, nameAttr(name)))
		want = append(want, name)
	}
	big := concat(append(links, doneMessage())...)

	ft := &fakeTransport{replies: [][]byte{big}}
	c := testClient(ft, &conf)
	if len(c.recvBuf) != minRecvBufferSize {
		t.Fatalf("got a %d bytes receive buffer; want %d", len(c.recvBuf), minRecvBufferSize)
	}
	if len(big) <= minRecvBufferSize {
		t.Fatalf("the datagram (%d bytes) should overflow the receive buffer", len(big))
	}

	names, err := c.ListInterfaces()
	if err != nil {
		t.Fatalf("error listing interfaces: %v", err)
	}
	if !cmp.Equal(names, want) {
		t.Errorf("got %d names; want %d", len(names), len(want))
	}
	if ft.peeks != 1 || ft.reads != 1 {
		t.Errorf("got %d peeks and %d reads; want 1 and 1", ft.peeks, ft.reads)
	}
	if len(c.recvBuf) < len(big) {
		t.Errorf("receive buffer wasn't grown: %d < %d", len(c.recvBuf), len(big))
	}
}

func TestDumpTruncated(t *testing.T) {
	c := NewClient(&oversizedTransport{}, fakeResolver{}, &Config{})

	if _, err := c.ListInterfaces(); !errors.Is(err, ErrTruncated) {
		t.Errorf("got %v; want %v", err, ErrTruncated)
	}
}
