package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Log        LogConfig
	Allocation AllocationConfig
}

type LogConfig struct {
	Level    string
	Encoding string
}

type AllocationConfig struct {
	// MaxLineQuantity caps the quantity a single order line may request.
	MaxLineQuantity int
}

// Load reads configuration from environment variables only.
func Load() (*Config, error) {
	return load(newViper())
}

// LoadFile reads a YAML config file. Environment variables override values
// from the file.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return load(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("allocation.max_line_quantity", 10000)

	return v
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level:    v.GetString("log.level"),
			Encoding: v.GetString("log.encoding"),
		},
		Allocation: AllocationConfig{
			MaxLineQuantity: v.GetInt("allocation.max_line_quantity"),
		},
	}

	if cfg.Allocation.MaxLineQuantity < 1 {
		return nil, fmt.Errorf("allocation.max_line_quantity must be positive, got %d", cfg.Allocation.MaxLineQuantity)
	}
	if cfg.Log.Encoding != "json" && cfg.Log.Encoding != "console" {
		return nil, fmt.Errorf("log.encoding must be json or console, got %q", cfg.Log.Encoding)
	}

	return cfg, nil
}
