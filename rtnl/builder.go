package rtnl

import (
	"github.com/mdlayher/netlink"
)

// Builder assembles a single netlink message: the header, a fixed body and
// any number of attributes. The underlying buffer grows on demand, the scratch
// size is just the initial headroom past the fixed body.
type Builder struct {
	buf  []byte
	body int
}

// NewBuilder returns a builder whose header and zeroed fixed body of bodyLen
// bytes are already in place.
func NewBuilder(typ uint16, flags netlink.HeaderFlags, bodyLen, scratch int) *Builder {
	hdrLen := nlmsgHeaderLen + bodyLen
	b := &Builder{
		buf:  make([]byte, hdrLen, hdrLen+scratch),
		body: bodyLen,
	}

	native.PutUint16(b.buf[4:6], typ)
	native.PutUint16(b.buf[6:8], uint16(flags))
	b.setLength()

	return b
}

// Body returns the fixed body so that callers can fill it in. It stays valid
// until the next attribute is added.
func (b *Builder) Body() []byte {
	return b.buf[nlmsgHeaderLen : nlmsgHeaderLen+b.body]
}

// Header decodes the message header as it currently stands.
func (b *Builder) Header() netlink.Header {
	h, _ := parseHeader(b.buf)
	return h
}

// SetFlags overwrites the header's flags.
func (b *Builder) SetFlags(flags netlink.HeaderFlags) {
	native.PutUint16(b.buf[6:8], uint16(flags))
}

// SetSequence overwrites the header's sequence number.
func (b *Builder) SetSequence(seq uint32) {
	native.PutUint32(b.buf[8:12], seq)
}

// AddAttribute appends an attribute at the first aligned offset past the
// current end of the message and returns the offset it was written at. The
// header's length is updated to the aligned end of the new attribute. A nil
// payload still reserves an attribute header, which is how containers are
// opened.
func (b *Builder) AddAttribute(typ uint16, payload []byte) int {
	start := align(len(b.buf))
	l := sizeofAttrHdr + len(payload)

	b.grow(align(start+l) - len(b.buf))

	native.PutUint16(b.buf[start:start+2], uint16(l))
	native.PutUint16(b.buf[start+2:start+4], typ)
	copy(b.buf[start+sizeofAttrHdr:], payload)

	b.setLength()

	return start
}

// AddUint32 appends an attribute carrying a host ordered 32-bit value.
func (b *Builder) AddUint32(typ uint16, v uint32) int {
	p := make([]byte, 4)
	native.PutUint32(p, v)
	return b.AddAttribute(typ, p)
}

// OpenContainer appends an empty attribute whose length is to be patched
// through CloseContainer once the nested attributes have been added.
func (b *Builder) OpenContainer(typ uint16) int {
	return b.AddAttribute(typ, nil)
}

// CloseContainer patches the length of the container opened at start so that
// it spans everything appended since.
func (b *Builder) CloseContainer(start int) {
	native.PutUint16(b.buf[start:start+2], uint16(align(len(b.buf))-start))
}

// Len returns the value of the header's length field.
func (b *Builder) Len() int {
	return int(native.Uint32(b.buf[0:4]))
}

// Bytes returns the message as it should be handed to the kernel.
func (b *Builder) Bytes() []byte {
	return b.buf[:b.Len()]
}

func (b *Builder) grow(n int) {
	if n <= 0 {
		return
	}
	b.buf = append(b.buf, make([]byte, n)...)
}

func (b *Builder) setLength() {
	native.PutUint32(b.buf[0:4], uint32(len(b.buf)))
}
