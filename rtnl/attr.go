package rtnl

// Attribute is a single type-length-value record as found after a message's
// fixed body. Data aliases the buffer the attribute was parsed from.
type Attribute struct {
	Type uint16
	Data []byte
}

// Mirrors RTA_ALIGN and NLMSG_ALIGN, which happen to be identical.
func align(n int) int {
	return (n + alignTo - 1) &^ (alignTo - 1)
}

// parseAttribute decodes the attribute at the head of b, returning it together
// with the offset of the next one. Just like RTA_OK, a record whose header or
// declared length doesn't fit in b is rejected.
func parseAttribute(b []byte) (Attribute, int, bool) {
	if len(b) < sizeofAttrHdr {
		return Attribute{}, 0, false
	}

	l := int(native.Uint16(b[0:2]))
	if l < sizeofAttrHdr || l > len(b) {
		return Attribute{}, 0, false
	}

	attr := Attribute{
		Type: native.Uint16(b[2:4]),
		Data: b[sizeofAttrHdr:l],
	}

	// The last attribute in a buffer needn't carry its trailing padding.
	return attr, min(align(l), len(b)), true
}

// ParseAttributes walks an attribute list until fewer than an attribute
// header's worth of bytes remain or a malformed record shows up.
func ParseAttributes(b []byte) []Attribute {
	attrs := []Attribute{}
	for len(b) >= sizeofAttrHdr {
		attr, next, ok := parseAttribute(b)
		if !ok {
			break
		}
		attrs = append(attrs, attr)
		b = b[next:]
	}
	return attrs
}
