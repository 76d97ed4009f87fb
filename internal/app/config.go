package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aussiebroadwan/shopfront/pkg/validate"
)

// Slot drivers.
const (
	SlotMemory = "memory"
	SlotFile   = "file"
	SlotSQLite = "sqlite"
)

// Config is the client configuration. Every field can be set with a
// SHOPFRONT_ environment variable named after its key, or from the file
// named by SHOPFRONT_CONFIG.
type Config struct {
	APIURL         string        `mapstructure:"api_url" validate:"required,url"`
	SlotDriver     string        `mapstructure:"slot_driver" validate:"oneof=memory file sqlite"`
	SlotPath       string        `mapstructure:"slot_path"`
	TokenPublicKey string        `mapstructure:"token_public_key"` // PEM file; empty skips signature checks
	HTTPTimeout    time.Duration `mapstructure:"http_timeout" validate:"gt=0"`
	RateLimit      float64       `mapstructure:"rate_limit" validate:"gte=0"` // requests per second, 0 disables
	RateBurst      int           `mapstructure:"rate_burst" validate:"gte=1"`
	ConfirmTTL     time.Duration `mapstructure:"confirm_ttl" validate:"gt=0"`
	Env            string        `mapstructure:"env" validate:"oneof=dev staging prod"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string        `mapstructure:"log_format" validate:"oneof=json text"`
}

var configDefaults = map[string]any{
	"api_url":          "http://localhost:8080",
	"slot_driver":      SlotFile,
	"slot_path":        "",
	"token_public_key": "",
	"http_timeout":     10 * time.Second,
	"rate_limit":       5.0,
	"rate_burst":       3,
	"confirm_ttl":      2 * time.Minute,
	"env":              "dev",
	"log_level":        "warn",
	"log_format":       "text",
}

// DefaultConfig is the configuration with no file and no environment.
func DefaultConfig() Config {
	cfg, _ := decodeConfig(newViper())
	return cfg
}

// LoadConfig reads defaults, then the optional config file, then the
// environment. An empty slot path for a persistent driver is placed in
// the user config directory.
func LoadConfig() (Config, error) {
	v := newViper()
	v.SetEnvPrefix("SHOPFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("SHOPFRONT_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg, err := decodeConfig(v)
	if err != nil {
		return Config{}, err
	}
	if cfg.SlotPath == "" && cfg.SlotDriver != SlotMemory {
		cfg.SlotPath, err = defaultSlotPath(cfg.SlotDriver)
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, def := range configDefaults {
		v.SetDefault(k, def)
	}
	return v
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func defaultSlotPath(driver string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	name := "credential"
	if driver == SlotSQLite {
		name = "session.db"
	}
	return filepath.Join(dir, "shopfront", name), nil
}
