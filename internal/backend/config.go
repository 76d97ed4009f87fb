package backend

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aussiebroadwan/shopfront/pkg/validate"
)

// Config is the reference backend's configuration. Every field can be set
// with a SHOPD_ environment variable named after its key, or from the file
// named by SHOPD_CONFIG.
type Config struct {
	Addr                string        `mapstructure:"addr" validate:"required"`
	TokenTTL            time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	KeyFile             string        `mapstructure:"key_file"`     // empty: ephemeral signing key
	Pepper              string        `mapstructure:"pepper"`       // mixed into password hashes
	AdminName           string        `mapstructure:"admin_name"`
	AdminEmail          string        `mapstructure:"admin_email" validate:"omitempty,email"`
	AdminPassword       string        `mapstructure:"admin_password" validate:"required_with=AdminEmail"`
	SeedCatalog         bool          `mapstructure:"seed_catalog"`
	Env                 string        `mapstructure:"env" validate:"oneof=dev staging prod"`
	LogLevel            string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat           string        `mapstructure:"log_format" validate:"oneof=json text"`
	ShutdownGracePeriod time.Duration `mapstructure:"shutdown_grace_period" validate:"gt=0"`
}

var configDefaults = map[string]any{
	"addr":                  ":8080",
	"token_ttl":             24 * time.Hour,
	"key_file":              "",
	"pepper":                "",
	"admin_name":            "Administrator",
	"admin_email":           "admin@shopfront.local",
	"admin_password":        "admin123",
	"seed_catalog":          true,
	"env":                   "dev",
	"log_level":             "info",
	"log_format":            "json",
	"shutdown_grace_period": 10 * time.Second,
}

// LoadConfig reads defaults, then the optional config file, then the
// environment.
func LoadConfig() (Config, error) {
	v := viper.New()
	for k, def := range configDefaults {
		v.SetDefault(k, def)
	}

	v.SetEnvPrefix("SHOPD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("SHOPD_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
