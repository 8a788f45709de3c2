// Package democonfig loads the optional configuration file consumed by
// cmd/flshmdemo.
package democonfig

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML-decoded shape of a flshmdemo config file.
type Config struct {
	Connection ConnectionConfig `toml:"connection"`
}

// ConnectionConfig names the registry entry flshmdemo registers and the
// message metadata it stamps onto outgoing messages.
type ConnectionConfig struct {
	Name    string `toml:"name"`
	Host    string `toml:"host"`
	Version uint8  `toml:"version"`
	Sandbox int8   `toml:"sandbox"`
	PerUser bool   `toml:"per_user"`
}

// Load reads and decodes the TOML config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := toml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}
