//go:build !linux

package rtnl

type RtnlResolver struct{ NetResolver }

func NewRtnlResolver() (*RtnlResolver, error) {
	return nil, errUnsupported
}

func (r *RtnlResolver) Close() error { return nil }
