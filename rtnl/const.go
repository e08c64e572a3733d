package rtnl

import "log/slog"

// Sizes of the fixed structures as laid out in the kernel's UAPI headers.
const (
	sizeofAttrHdr   = 0x4  // struct rtattr
	sizeofIfInfoMsg = 0x10 // struct ifinfomsg
	sizeofIfAddrMsg = 0x8  // struct ifaddrmsg
	sizeofNdMsg     = 0xc  // struct ndmsg
	sizeofErrorCode = 0x4  // leading int of struct nlmsgerr

	alignTo = 4
)

const (
	// Trailing room reserved when crafting link and address messages.
	linkScratch = 1024
	addrScratch = 256

	defaultRecvBufferSize = 1024 * 1024
	minRecvBufferSize     = 4096
)

// Message types from include/uapi/linux/rtnetlink.h.
const (
	RTM_NEWLINK  uint16 = 16
	RTM_GETLINK  uint16 = 18
	RTM_NEWADDR  uint16 = 20
	RTM_NEWNEIGH uint16 = 28
	RTM_GETNEIGH uint16 = 30
)

// Link attributes (IFLA_*), address attributes (IFA_*) and neighbour
// attributes (NDA_*).
const (
	IFLA_IFNAME   uint16 = 3
	IFLA_MASTER   uint16 = 10
	IFLA_LINKINFO uint16 = 18

	IFLA_INFO_KIND uint16 = 1

	IFA_ADDRESS   uint16 = 1
	IFA_LOCAL     uint16 = 2
	IFA_BROADCAST uint16 = 4

	NDA_LLADDR uint16 = 2
	NDA_VLAN   uint16 = 5
	NDA_MASTER uint16 = 9
)

// Attribute types may carry NLA_F_NESTED and NLA_F_NET_BYTEORDER on top.
const NLA_TYPE_MASK uint16 = 0x3fff

// Address families and interface flags.
const (
	AF_INET   uint8 = 2
	AF_BRIDGE uint8 = 7
	AF_PACKET uint8 = 17

	IFF_UP uint32 = 0x1
)

// LevelTrace sits below slog.LevelDebug and is used for per-message logs.
const LevelTrace = slog.Level(slog.LevelDebug - 1)

var msgTypeName = map[uint16]string{
	RTM_NEWLINK:  "RTM_NEWLINK",
	RTM_GETLINK:  "RTM_GETLINK",
	RTM_NEWADDR:  "RTM_NEWADDR",
	RTM_NEWNEIGH: "RTM_NEWNEIGH",
	RTM_GETNEIGH: "RTM_GETNEIGH",
}
