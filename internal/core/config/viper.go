package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence; the CLI
// applies explicit flag overrides on the returned Config.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	defaults := DefaultConfig()
	v.SetDefault("compiler.max_auction_depth", defaults.MaxAuctionDepth)
	v.SetDefault("output.format", defaults.OutputFormat)
	v.SetDefault("output.indent", defaults.OutputIndent)
	v.SetDefault("library.db_url", defaults.DBURL)
	v.SetDefault("watch.debounce", defaults.WatchDebounce.String())

	// Bind environment variables with BIDLANG_ prefix
	v.SetEnvPrefix("BIDLANG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		MaxAuctionDepth: v.GetInt("compiler.max_auction_depth"),
		OutputFormat:    v.GetString("output.format"),
		OutputIndent:    v.GetInt("output.indent"),
		DBURL:           v.GetString("library.db_url"),
		WatchDebounce:   v.GetDuration("watch.debounce"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
