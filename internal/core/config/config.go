// Package config provides configuration management for the bidlang CLI.
package config

import (
	"fmt"
	"time"

	"github.com/solatis/bidlang/internal/rules"
	"github.com/solatis/bidlang/internal/types"
)

// Config holds compiler, output, library, and watch settings.
type Config struct {
	MaxAuctionDepth int
	OutputFormat    string
	OutputIndent    int
	DBURL           string
	WatchDebounce   time.Duration
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxAuctionDepth: types.MaxAuctionDepth,
		OutputFormat:    "json",
		OutputIndent:    2,
		DBURL:           "sqlite://bidlang.db",
		WatchDebounce:   200 * time.Millisecond,
	}
}

// Validate checks bounds and known values. Called by LoadConfig and again
// by the CLI after flag overrides are applied.
func (c *Config) Validate() error {
	if c.MaxAuctionDepth <= 0 || c.MaxAuctionDepth > types.MaxAuctionDepth {
		return fmt.Errorf("max_auction_depth must be between 1 and %d, got %d", types.MaxAuctionDepth, c.MaxAuctionDepth)
	}
	if _, err := rules.ParseFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("output format: %w", err)
	}
	if c.OutputIndent < 0 || c.OutputIndent > 8 {
		return fmt.Errorf("indent must be between 0 and 8, got %d", c.OutputIndent)
	}
	if c.DBURL == "" {
		return fmt.Errorf("db_url must not be empty")
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("watch debounce must be positive, got %v", c.WatchDebounce)
	}
	return nil
}
