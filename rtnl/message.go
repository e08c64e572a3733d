package rtnl

import (
	"github.com/mdlayher/netlink"
)

// Size of struct nlmsghdr.
const nlmsgHeaderLen = 16

// parseHeader decodes the struct nlmsghdr at the head of b. It fails if b
// can't hold a header or if the header declares a length shorter than itself.
func parseHeader(b []byte) (netlink.Header, bool) {
	if len(b) < nlmsgHeaderLen {
		return netlink.Header{}, false
	}

	h := netlink.Header{
		Length:   native.Uint32(b[0:4]),
		Type:     netlink.HeaderType(native.Uint16(b[4:6])),
		Flags:    netlink.HeaderFlags(native.Uint16(b[6:8])),
		Sequence: native.Uint32(b[8:12]),
		PID:      native.Uint32(b[12:16]),
	}

	return h, h.Length >= nlmsgHeaderLen
}

// ParseMessages walks a datagram received from the kernel as a sequence of
// netlink messages. The first message failing the NLMSG_OK checks (the header
// doesn't fit or the declared length overflows the remaining bytes) ends the
// walk; it and anything after it are dropped. The returned messages alias b.
func ParseMessages(b []byte) []netlink.Message {
	msgs := []netlink.Message{}
	for {
		h, ok := parseHeader(b)
		if !ok || int(h.Length) > len(b) {
			break
		}

		msgs = append(msgs, netlink.Message{
			Header: h,
			Data:   b[nlmsgHeaderLen:h.Length],
		})

		b = b[min(align(int(h.Length)), len(b)):]
	}
	return msgs
}

// messageAttributes returns the attributes trailing a message's fixed body of
// bodyLen bytes. Each message kind has a body of its own size: mixing them up
// makes the walk start off by the difference.
func messageAttributes(m netlink.Message, bodyLen int) []Attribute {
	start := align(bodyLen)
	if len(m.Data) < start {
		return nil
	}
	return ParseAttributes(m.Data[start:])
}

// errorCode extracts the (negative) errno carried by an NLMSG_ERROR message.
// A zero code is the kernel's acknowledgement.
func errorCode(m netlink.Message) (int32, bool) {
	if m.Header.Type != netlink.Error || len(m.Data) < sizeofErrorCode {
		return 0, false
	}
	return int32(native.Uint32(m.Data[0:4])), true
}
