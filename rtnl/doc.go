// Package rtnl implements the handful of rtnetlink(7) requests needed to
// manage Linux bridges: creating a bridge, attaching and detaching ports,
// assigning IPv4 addresses and bringing interfaces up. It can also dump the
// link table and a bridge's forwarding database (FDB).
//
// Messages are crafted by hand following the structures in
// include/uapi/linux/rtnetlink.h rather than through a high level library so
// that the bytes going out to the kernel are under our total control. Be sure
// to check netlink(7), rtnetlink(7) and rtnetlink(3) for the macros (NLMSG_OK,
// RTA_NEXT and friends) the codec in this package mirrors.
//
// All requests issued by a Client are serialised on a single socket. Replies
// are not matched against requests through their sequence numbers, so a
// Client must not share its socket with anybody else.
//
// With acknowledgements disabled requests are fire-and-forget, yet the
// kernel still queues an NLMSG_ERROR for every request it rejects. Nobody
// reads it back until the next exchange on the same Client: a following dump
// then fails with an *OpError carrying the earlier request's errno under the
// dump's own operation name.
//
// The kernel's FDB dump entry point is rtnl_fdb_dump [0]. Note how it accepts
// both a struct ndmsg and a struct ifinfomsg as the request's body for
// backwards compatibility with older iproute2 releases.
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/net/core/rtnetlink.c#L4843
package rtnl
