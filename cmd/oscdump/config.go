package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// config holds the runtime settings of oscdump.
type config struct {
	Addr        string
	Network     string
	ReadTimeout time.Duration
	Verbose     bool
}

// fileConfig mirrors config in the TOML file. Durations are strings in the
// time.ParseDuration format, e.g. "500ms".
type fileConfig struct {
	Addr        string `toml:"addr"`
	Network     string `toml:"network"`
	ReadTimeout string `toml:"read_timeout"`
	Verbose     bool   `toml:"verbose"`
}

func defaultConfig() config {
	return config{Addr: ":8765", Network: "udp"}
}

// loadConfig reads the TOML file at path and overlays the keys that are
// present onto cfg.
func loadConfig(path string, cfg *config) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("loadConfig: %w", err)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = fc.Addr
	}
	if meta.IsDefined("network") {
		cfg.Network = fc.Network
	}
	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(fc.ReadTimeout)
		if err != nil {
			return fmt.Errorf("loadConfig: read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = fc.Verbose
	}

	if cfg.Network != "udp" && cfg.Network != "tcp" {
		return fmt.Errorf("loadConfig: unsupported network %q", cfg.Network)
	}

	return nil
}
