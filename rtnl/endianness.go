package rtnl

import (
	ne "github.com/josharian/native"
)

// Netlink control fields travel in host byte order.
var native = ne.Endian

// Htonl converts a host ordered 32-bit value to network byte order. Writing
// the result with the native byte order yields the big endian bytes.
func Htonl(in uint32) uint32 {
	if !ne.IsBigEndian {
		return (in&0xFF)<<24 | (in&0xFF00)<<8 | (in>>8)&0xFF00 | (in>>24)&0xFF
	}
	return in
}
