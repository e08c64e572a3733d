package rtnl

import (
	"errors"
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
)

const bridgeKind = "bridge"

var errEmptyBridgeName = errors.New("empty bridge name")

// Link is an entry of the kernel's link table.
type Link struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Flags  uint32 `json:"flags"`
	Master int    `json:"master,omitempty"`
}

func (l Link) IsUp() bool {
	return l.Flags&IFF_UP != 0
}

// newLinkMessage crafts a message whose body is a struct ifinfomsg:
//
//	struct ifinfomsg {
//	    unsigned char  ifi_family;
//	    unsigned char  __ifi_pad;
//	    unsigned short ifi_type;
//	    int            ifi_index;
//	    unsigned int   ifi_flags;
//	    unsigned int   ifi_change;
//	};
func newLinkMessage(typ uint16, flags netlink.HeaderFlags, family uint8, index int, ifFlags, change uint32) *Builder {
	b := NewBuilder(typ, flags, sizeofIfInfoMsg, linkScratch)

	body := b.Body()
	body[0] = family
	native.PutUint32(body[4:8], uint32(int32(index)))
	native.PutUint32(body[8:12], ifFlags)
	native.PutUint32(body[12:16], change)

	return b
}

func createBridgeMessage(name string) *Builder {
	b := newLinkMessage(RTM_NEWLINK, netlink.Request|netlink.Create|netlink.Excl, AF_PACKET, 0, 0, 0)

	b.AddAttribute(IFLA_IFNAME, nlenc.Bytes(name))

	linkInfo := b.OpenContainer(IFLA_LINKINFO)
	b.AddAttribute(IFLA_INFO_KIND, nlenc.Bytes(bridgeKind))
	b.CloseContainer(linkInfo)

	return b
}

// CreateBridge asks the kernel for a new bridge device. Creation is exclusive:
// an existing device with the same name makes the request fail.
func (c *Client) CreateBridge(name string) error {
	if name == "" {
		return errEmptyBridgeName
	}
	return c.request("create_bridge", createBridgeMessage(name))
}

func setMasterMessage(masterIndex, portIndex int) *Builder {
	b := newLinkMessage(RTM_NEWLINK, netlink.Request, AF_PACKET, portIndex, 0, 0)
	b.AddUint32(IFLA_MASTER, uint32(masterIndex))
	return b
}

// SetBridgeMembership enslaves the port to the given bridge. An empty bridge
// name releases the port from whatever bridge it belongs to.
func (c *Client) SetBridgeMembership(bridge string, portIndex int) error {
	masterIndex := 0
	if bridge != "" {
		idx, err := c.resolver.IndexByName(bridge)
		if err != nil {
			return fmt.Errorf("couldn't resolve bridge %q: %w", bridge, err)
		}
		masterIndex = idx
	}

	op := "join_bridge"
	if masterIndex == 0 {
		op = "leave_bridge"
	}

	return c.request(op, setMasterMessage(masterIndex, portIndex))
}

// JoinBridge is SetBridgeMembership for a port known by name.
func (c *Client) JoinBridge(bridge, port string) error {
	portIndex, err := c.resolver.IndexByName(port)
	if err != nil {
		return fmt.Errorf("couldn't resolve port %q: %w", port, err)
	}
	return c.SetBridgeMembership(bridge, portIndex)
}

func (c *Client) DetachFromBridge(portIndex int) error {
	return c.SetBridgeMembership("", portIndex)
}

func bringUpMessage(index int) *Builder {
	return newLinkMessage(RTM_NEWLINK, netlink.Request, AF_PACKET, index, IFF_UP, IFF_UP)
}

// BringUp sets the administrative up flag on the device.
func (c *Client) BringUp(device string) error {
	index, err := c.resolver.IndexByName(device)
	if err != nil {
		return fmt.Errorf("couldn't resolve device %q: %w", device, err)
	}
	return c.request("bring_up", bringUpMessage(index))
}

func getLinkMessage() *Builder {
	return newLinkMessage(RTM_GETLINK, netlink.Request|netlink.Dump, AF_PACKET, 0, 0, 0)
}

func parseLink(m netlink.Message) Link {
	l := Link{}
	if len(m.Data) >= sizeofIfInfoMsg {
		l.Index = int(int32(native.Uint32(m.Data[4:8])))
		l.Flags = native.Uint32(m.Data[8:12])
	}

	for _, a := range messageAttributes(m, sizeofIfInfoMsg) {
		switch a.Type & NLA_TYPE_MASK {
		case IFLA_IFNAME:
			l.Name = nlenc.String(a.Data)
		case IFLA_MASTER:
			if len(a.Data) >= 4 {
				l.Master = int(native.Uint32(a.Data[0:4]))
			}
		}
	}

	return l
}

func (c *Client) listLinks(op string) ([]Link, error) {
	links := []Link{}
	err := c.dump(op, getLinkMessage(), func(m netlink.Message) {
		links = append(links, parseLink(m))
	})
	if err != nil {
		return nil, err
	}
	c.m.Records.WithLabelValues(op).Set(float64(len(links)))
	return links, nil
}

// ListLinks dumps the kernel's link table.
func (c *Client) ListLinks() ([]Link, error) {
	return c.listLinks("list_links")
}

// ListInterfaces returns the name of every link, in the order the kernel
// reported them. A link whose message carried no name shows up as "".
func (c *Client) ListInterfaces() ([]string, error) {
	links, err := c.listLinks("list_interfaces")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Name)
	}
	return names, nil
}
