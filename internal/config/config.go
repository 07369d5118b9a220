// Package config loads Node parameters that live outside the
// coordination core: the storage base directory, the network label,
// the polling interval, and the chain id a Node should sign for.
// `cmd/geth` and `internal/cli/server` both load their node
// configuration from a TOML file (see their config_test.go fixtures);
// this package follows that same shape for the wallet core, using
// github.com/BurntSushi/toml as the decoder.
package config

import (
	"fmt"
	"math/big"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk shape of a Node's external parameters.
type Config struct {
	Network      string `toml:"network"`
	ChainID      int64  `toml:"chain_id"`
	Account      string `toml:"account"`
	BaseDir      string `toml:"base_dir"`
	Currency     string `toml:"currency"`
	PollInterval string `toml:"poll_interval"` // e.g. "15s"; empty keeps the package default
}

// ChainIDBig returns ChainID as the *big.Int the Node's constructor
// and signer require.
func (c Config) ChainIDBig() *big.Int {
	return big.NewInt(c.ChainID)
}

// Poll parses PollInterval, falling back to def when unset.
func (c Config) Poll(def time.Duration) (time.Duration, error) {
	if c.PollInterval == "" {
		return def, nil
	}
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("config: invalid poll_interval %q: %w", c.PollInterval, err)
	}
	return d, nil
}

// Load decodes a TOML configuration file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}
