// Package config loads the server configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
	Store  StoreSettings  `hcl:"store,block"`
}

// ServerSettings contains listener-level configuration.
type ServerSettings struct {
	Addr        string `hcl:"addr,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	RoomIdleTTL string `hcl:"room_idle_ttl,optional"`
}

// GameSettings sets the stakes for newly created games, in currency
// minor units.
type GameSettings struct {
	SmallBlind    int64 `hcl:"small_blind,optional"`
	BigBlind      int64 `hcl:"big_blind,optional"`
	StartingStack int64 `hcl:"starting_stack,optional"`
}

// StoreSettings selects the game-record backend.
type StoreSettings struct {
	// Driver is one of memory, sqlite, postgres.
	Driver string `hcl:"driver,optional"`
	// DSN is the sqlite file path or the postgres connection string.
	DSN string `hcl:"dsn,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Addr:        ":5000",
			LogLevel:    "info",
			RoomIdleTTL: "10m",
		},
		Game: GameSettings{
			SmallBlind:    250,
			BigBlind:      500,
			StartingStack: 20000,
		},
		Store: StoreSettings{
			Driver: "memory",
		},
	}
}

// Load reads an HCL config file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	def := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = def.Server.LogLevel
	}
	if cfg.Server.RoomIdleTTL == "" {
		cfg.Server.RoomIdleTTL = def.Server.RoomIdleTTL
	}
	if cfg.Game.SmallBlind == 0 {
		cfg.Game.SmallBlind = def.Game.SmallBlind
	}
	if cfg.Game.BigBlind == 0 {
		cfg.Game.BigBlind = def.Game.BigBlind
	}
	if cfg.Game.StartingStack == 0 {
		cfg.Game.StartingStack = def.Game.StartingStack
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = def.Store.Driver
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Game.SmallBlind > c.Game.BigBlind {
		return fmt.Errorf("small_blind %d exceeds big_blind %d", c.Game.SmallBlind, c.Game.BigBlind)
	}
	if c.Game.BigBlind > c.Game.StartingStack {
		return fmt.Errorf("big_blind %d exceeds starting_stack %d", c.Game.BigBlind, c.Game.StartingStack)
	}
	switch c.Store.Driver {
	case "memory":
	case "sqlite", "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store driver %q requires a dsn", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if _, err := c.RoomIdleTTL(); err != nil {
		return err
	}
	return nil
}

// RoomIdleTTL parses the idle-room reap interval.
func (c *Config) RoomIdleTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.RoomIdleTTL)
	if err != nil {
		return 0, fmt.Errorf("bad room_idle_ttl %q: %w", c.Server.RoomIdleTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("room_idle_ttl must be positive, got %q", c.Server.RoomIdleTTL)
	}
	return d, nil
}
