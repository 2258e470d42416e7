package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file settings
const EnvPrefix = "TEXTBOOK_RSA"

// RestConfig holds the settings of the REST service
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required,numeric"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	Keys     KeySettings      `mapstructure:"keys"`
}

// Validate checks the nested settings of the REST service
func (c *RestConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Keys.Validate(); err != nil {
		return err
	}
	return nil
}

// InitializeRestConfig reads the YAML file at path, applies TEXTBOOK_RSA_* environment overrides
// (e.g. TEXTBOOK_RSA_DATABASE_DSN) and validates the result.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	setRestDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setRestDefaults(v *viper.Viper) {
	keys := DefaultKeySettings()

	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "")
	v.SetDefault("keys.default_bit_length", keys.DefaultBitLength)
	v.SetDefault("keys.max_bit_length", keys.MaxBitLength)
	v.SetDefault("keys.generation_timeout", keys.GenerationTimeout)
	v.SetDefault("keys.miller_rabin_rounds", keys.MillerRabinRounds)
	v.SetDefault("keys.small_prime_bound", keys.SmallPrimeBound)
	v.SetDefault("keys.framing", keys.Framing)
	v.SetDefault("keys.max_payload_bytes", keys.MaxPayloadBytes)
}
