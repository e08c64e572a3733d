package rtnl

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/mdlayher/netlink"
)

// Broadcast sets the host part of an IPv4 address, given in host order, to
// all ones.
func Broadcast(ip uint32, prefixLen int) uint32 {
	switch {
	case prefixLen <= 0:
		return 0xFFFFFFFF
	case prefixLen >= 32:
		return ip
	}
	return ip | (uint32(1)<<uint(32-prefixLen) - 1)
}

// newAddrMessage crafts a RTM_NEWADDR message whose body is a struct ifaddrmsg:
//
//	struct ifaddrmsg {
//	    __u8  ifa_family;
//	    __u8  ifa_prefixlen;
//	    __u8  ifa_flags;
//	    __u8  ifa_scope;
//	    __u32 ifa_index;
//	};
//
// Addresses travel in network byte order.
func newAddrMessage(ip netip.Addr, prefixLen int, index int) *Builder {
	b := NewBuilder(RTM_NEWADDR, netlink.Request|netlink.Create|netlink.Excl, sizeofIfAddrMsg, addrScratch)

	body := b.Body()
	body[0] = AF_INET
	body[1] = uint8(prefixLen)
	native.PutUint32(body[4:8], uint32(index))

	raw := ip.As4()
	addr := binary.BigEndian.Uint32(raw[:])

	b.AddUint32(IFA_LOCAL, Htonl(addr))
	b.AddUint32(IFA_ADDRESS, Htonl(addr))
	b.AddUint32(IFA_BROADCAST, Htonl(Broadcast(addr, prefixLen)))

	return b
}

// AssignAddress adds ip/prefixLen to the device along with the matching
// broadcast address. The request is exclusive, so assigning an address the
// device already has fails.
func (c *Client) AssignAddress(ip netip.Addr, prefixLen int, device string) error {
	if !ip.Is4() {
		return fmt.Errorf("%s is not an IPv4 address", ip)
	}
	if prefixLen < 0 || prefixLen > 32 {
		return fmt.Errorf("invalid prefix length %d", prefixLen)
	}

	index, err := c.resolver.IndexByName(device)
	if err != nil {
		return fmt.Errorf("couldn't resolve device %q: %w", device, err)
	}

	return c.request("assign_address", newAddrMessage(ip, prefixLen, index))
}
