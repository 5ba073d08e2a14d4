package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Clean environment
	os.Unsetenv("BIDLANG_OUTPUT_FORMAT")
	os.Unsetenv("BIDLANG_COMPILER_MAX_AUCTION_DEPTH")
	os.Unsetenv("BIDLANG_LIBRARY_DB_URL")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.MaxAuctionDepth != 64 {
			t.Errorf("expected max_auction_depth 64, got %d", cfg.MaxAuctionDepth)
		}
		if cfg.OutputFormat != "json" {
			t.Errorf("expected format json, got %s", cfg.OutputFormat)
		}
		if cfg.OutputIndent != 2 {
			t.Errorf("expected indent 2, got %d", cfg.OutputIndent)
		}
		if cfg.DBURL != "sqlite://bidlang.db" {
			t.Errorf("expected db_url sqlite://bidlang.db, got %s", cfg.DBURL)
		}
		if cfg.WatchDebounce != 200*time.Millisecond {
			t.Errorf("expected debounce 200ms, got %v", cfg.WatchDebounce)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		os.Setenv("BIDLANG_OUTPUT_FORMAT", "yaml")
		os.Setenv("BIDLANG_COMPILER_MAX_AUCTION_DEPTH", "16")
		defer os.Unsetenv("BIDLANG_OUTPUT_FORMAT")
		defer os.Unsetenv("BIDLANG_COMPILER_MAX_AUCTION_DEPTH")

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.OutputFormat != "yaml" {
			t.Errorf("expected format yaml, got %s", cfg.OutputFormat)
		}
		if cfg.MaxAuctionDepth != 16 {
			t.Errorf("expected max_auction_depth 16, got %d", cfg.MaxAuctionDepth)
		}
	})

	t.Run("unknown output format", func(t *testing.T) {
		os.Setenv("BIDLANG_OUTPUT_FORMAT", "xml")
		defer os.Unsetenv("BIDLANG_OUTPUT_FORMAT")

		_, err := LoadConfig("")
		if err == nil {
			t.Error("expected error for unknown output format")
		}
	})

	t.Run("depth above hard limit", func(t *testing.T) {
		os.Setenv("BIDLANG_COMPILER_MAX_AUCTION_DEPTH", "100")
		defer os.Unsetenv("BIDLANG_COMPILER_MAX_AUCTION_DEPTH")

		_, err := LoadConfig("")
		if err == nil {
			t.Error("expected error for max_auction_depth > 64")
		}
	})

	t.Run("non-positive depth", func(t *testing.T) {
		os.Setenv("BIDLANG_COMPILER_MAX_AUCTION_DEPTH", "0")
		defer os.Unsetenv("BIDLANG_COMPILER_MAX_AUCTION_DEPTH")

		_, err := LoadConfig("")
		if err == nil {
			t.Error("expected error for max_auction_depth 0")
		}
	})

	t.Run("negative indent", func(t *testing.T) {
		os.Setenv("BIDLANG_OUTPUT_INDENT", "-1")
		defer os.Unsetenv("BIDLANG_OUTPUT_INDENT")

		_, err := LoadConfig("")
		if err == nil {
			t.Error("expected error for negative indent")
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/bidlang.yaml")
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(c *Config) {}},
		{name: "empty db_url", mutate: func(c *Config) { c.DBURL = "" }, wantErr: true},
		{name: "zero debounce", mutate: func(c *Config) { c.WatchDebounce = 0 }, wantErr: true},
		{name: "indent too wide", mutate: func(c *Config) { c.OutputIndent = 9 }, wantErr: true},
		{name: "text format valid", mutate: func(c *Config) { c.OutputFormat = "text" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
