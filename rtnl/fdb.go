package rtnl

import (
	"log/slog"
	"net"

	"github.com/mdlayher/netlink"
)

// FDBEntry is a forwarding database entry: a link layer address together
// with the port it was learnt on.
type FDBEntry struct {
	// Destination is the name of the port.
	Destination string `json:"destination"`

	// Addr stays zeroed when the kernel sends no NDA_LLADDR.
	Addr [6]byte `json:"addr"`

	Index int    `json:"index"`
	State uint16 `json:"state"`
	Flags uint8  `json:"flags"`
	Vlan  uint16 `json:"vlan,omitempty"`
}

func (e FDBEntry) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(append([]byte{}, e.Addr[:]...))
}

// The request carries a struct ifinfomsg just like iproute2's bridge(8) does,
// but replies come with a struct ndmsg:
//
//	struct ndmsg {
//	    __u8  ndm_family;
//	    __u8  ndm_pad1;
//	    __u16 ndm_pad2;
//	    __s32 ndm_ifindex;
//	    __u16 ndm_state;
//	    __u8  ndm_flags;
//	    __u8  ndm_type;
//	};
func getNeighMessage() *Builder {
	return newLinkMessage(RTM_GETNEIGH, netlink.Request|netlink.Dump, AF_BRIDGE, 0, 0, 0)
}

func parseFDBEntry(m netlink.Message, r Resolver) FDBEntry {
	e := FDBEntry{}
	if len(m.Data) >= sizeofNdMsg {
		e.Index = int(int32(native.Uint32(m.Data[4:8])))
		e.State = native.Uint16(m.Data[8:10])
		e.Flags = m.Data[10]
	}

	name, err := r.NameByIndex(e.Index)
	if err != nil {
		slog.Warn("couldn't resolve the fdb entry's port", "index", e.Index, "err", err)
	}
	e.Destination = name

	for _, a := range messageAttributes(m, sizeofNdMsg) {
		switch a.Type & NLA_TYPE_MASK {
		case NDA_LLADDR:
			copy(e.Addr[:], a.Data)
		case NDA_VLAN:
			if len(a.Data) >= 2 {
				e.Vlan = native.Uint16(a.Data[0:2])
			}
		}
	}

	return e
}

// ListFDB dumps the forwarding database of every bridge on the system.
func (c *Client) ListFDB() ([]FDBEntry, error) {
	const op = "list_fdb"

	entries := []FDBEntry{}
	err := c.dump(op, getNeighMessage(), func(m netlink.Message) {
		entries = append(entries, parseFDBEntry(m, c.resolver))
	})
	if err != nil {
		return nil, err
	}

	c.m.Records.WithLabelValues(op).Set(float64(len(entries)))
	return entries, nil
}
