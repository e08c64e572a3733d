package rtnl

import (
	"github.com/goccy/go-yaml"
)

type Config struct {
	// Acknowledge asks the kernel to acknowledge every mutating request and
	// surfaces its verdict. Disabling it reverts to fire-and-forget requests,
	// whose failures show up on the Client's next exchange instead.
	Acknowledge bool `yaml:"acknowledge"`

	ExtendedAck bool `yaml:"extendedAck"`

	// ReadTimeout bounds a whole exchange in milliseconds. 0 disables it.
	ReadTimeout int `yaml:"readTimeout"`

	// MaxReads caps the datagrams read while dumping. 0 disables it.
	MaxReads int `yaml:"maxReads"`

	RecvBufferSize int    `yaml:"recvBufferSize"`
	Resolver       string `yaml:"resolver"`
}

var DefaultConfig = Config{
	Acknowledge:    true,
	ExtendedAck:    true,
	ReadTimeout:    5000,
	MaxReads:       0,
	RecvBufferSize: defaultRecvBufferSize,
	Resolver:       NetResolverName,
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}
