package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scitags/netdev-go/api"
	"github.com/scitags/netdev-go/rtnl"
)

type Config struct {
	Netlink *rtnl.Config `yaml:"netlink"`
	Api     *api.Config  `yaml:"api"`
}

func (c Config) String() string {
	m, err := yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return "marshalling error..."
	}
	return string(m)
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	netlinkConf := rtnl.DefaultConfig
	apiConf := api.DefaultConfig

	def := &config{
		Netlink: &netlinkConf,
		Api:     &apiConf,
	}

	if err := yaml.Unmarshal(b, def); err != nil {
		return err
	}

	// An explicit null drops the section: fall back to its defaults.
	if def.Netlink == nil {
		def.Netlink = &netlinkConf
	}
	if def.Api == nil {
		def.Api = &apiConf
	}

	*c = Config(*def)

	return nil
}

func ReadConf(path string) (*Config, error) {
	r, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the configuration file: %w", err)
	}

	conf := Config{}
	if err := yaml.Unmarshal(r, &conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling the configuration: %w", err)
	}

	return &conf, nil
}

func defaultConf() (*Config, error) {
	conf := Config{}
	if err := conf.UnmarshalYAML([]byte("{}")); err != nil {
		return nil, fmt.Errorf("error building the default configuration: %w", err)
	}
	return &conf, nil
}
