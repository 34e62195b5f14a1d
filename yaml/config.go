// Package yaml loads named harvesting target configurations from a
// YAML file.
package yaml

import (
	"fmt"
	"os"
	"sort"

	"github.com/fwojciec/docharvest"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure of a targets file:
//
//	targets:
//	  handbook:
//	    rootUrl: https://example.com/docs
//	    classify:
//	      chapters:
//	        /docs/start: {number: 1, name: Getting Started}
//	      priorities:
//	        intro: 1
type Config struct {
	Targets map[string]docharvest.Target `yaml:"targets"`
}

// Load reads and validates a targets file. Each target's Name field
// is filled in from its map key.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Targets) == 0 {
		return nil, docharvest.Errorf(docharvest.EINVALID, "config %s defines no targets", path)
	}

	for name, target := range cfg.Targets {
		target.Name = name
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("target %q: %w", name, err)
		}
		cfg.Targets[name] = target
	}

	return &cfg, nil
}

// Target returns the named target.
// Returns ENOTFOUND if the name is not configured.
func (c *Config) Target(name string) (docharvest.Target, error) {
	target, ok := c.Targets[name]
	if !ok {
		return docharvest.Target{}, docharvest.Errorf(docharvest.ENOTFOUND, "target %q not found", name)
	}
	return target, nil
}

// Names returns all configured target names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
