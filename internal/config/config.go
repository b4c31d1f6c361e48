package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Version is the service version reported by /health
const Version = "1.0.0"

// SchemeConfig represents server scheme configuration
type SchemeConfig struct {
	Address      string `json:"address" mapstructure:"address"`
	HTTPPort     int    `json:"http_port" mapstructure:"http_port"`
	HTTPSPort    int    `json:"https_port" mapstructure:"https_port"`
	ForceHTTPS   bool   `json:"force_https" mapstructure:"force_https"`
	CertFile     string `json:"cert_file" mapstructure:"cert_file"`
	KeyFile      string `json:"key_file" mapstructure:"key_file"`
	UnixFile     string `json:"unix_file" mapstructure:"unix_file"`
	UnixFilePerm string `json:"unix_file_perm" mapstructure:"unix_file_perm"`
	EnableH2C    bool   `json:"enable_h2c" mapstructure:"enable_h2c"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // console, json
	Output string `json:"output" mapstructure:"output"` // stdout, file path
}

// LimitsConfig bounds request payload sizes
type LimitsConfig struct {
	MaxBodyBytes   int64 `json:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRandomBytes int   `json:"max_random_bytes" mapstructure:"max_random_bytes"`
}

// DeriveConfig controls password-based key derivation defaults
type DeriveConfig struct {
	Iterations int `json:"iterations" mapstructure:"iterations"`
	CacheTTL   int `json:"cache_ttl" mapstructure:"cache_ttl"` // minutes
}

// Config represents the main configuration
type Config struct {
	Scheme    SchemeConfig `json:"scheme" mapstructure:"scheme"`
	Log       LogConfig    `json:"log" mapstructure:"log"`
	Limits    LimitsConfig `json:"limits" mapstructure:"limits"`
	Derive    DeriveConfig `json:"derive" mapstructure:"derive"`
	DataDir   string       `json:"data_dir" mapstructure:"data_dir"`
	JWTSecret string       `json:"jwt_secret" mapstructure:"jwt_secret"`
	JWTExpire int          `json:"jwt_expire" mapstructure:"jwt_expire"` // hours
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		viper.SetConfigName("config")
		viper.SetConfigType("json")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("$HOME/.cryptor")

		// Scheme defaults
		viper.SetDefault("scheme.address", "0.0.0.0")
		viper.SetDefault("scheme.http_port", 5390)
		viper.SetDefault("scheme.https_port", -1)
		viper.SetDefault("scheme.force_https", false)
		viper.SetDefault("scheme.enable_h2c", false)

		// Log defaults
		viper.SetDefault("log.level", "info")
		viper.SetDefault("log.format", "console")
		viper.SetDefault("log.output", "stdout")

		// Limits defaults
		viper.SetDefault("limits.max_body_bytes", 32<<20)
		viper.SetDefault("limits.max_random_bytes", 4096)

		// Derivation defaults
		viper.SetDefault("derive.iterations", 100000)
		viper.SetDefault("derive.cache_ttl", 10)

		// Other defaults
		viper.SetDefault("data_dir", "./data")
		viper.SetDefault("jwt_secret", "cryptor-secret-change-me")
		viper.SetDefault("jwt_expire", 24)

		// Environment variables
		viper.SetEnvPrefix("CRYPTOR")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Warn().Msg("Config file not found, using defaults")
			} else {
				log.Error().Err(err).Msg("Error reading config file")
			}
		}

		cfg = &Config{}
		if err := viper.Unmarshal(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to unmarshal config")
		}
	})
	return cfg
}

func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

// GetHTTPAddr returns the HTTP listen address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Scheme.Address, c.Scheme.HTTPPort)
}

// GetHTTPSAddr returns the HTTPS listen address
func (c *Config) GetHTTPSAddr() string {
	if c.Scheme.HTTPSPort <= 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Scheme.Address, c.Scheme.HTTPSPort)
}

// IsHTTPSEnabled returns whether HTTPS is enabled
func (c *Config) IsHTTPSEnabled() bool {
	return c.Scheme.HTTPSPort > 0 && c.Scheme.CertFile != "" && c.Scheme.KeyFile != ""
}

// IsH2CEnabled returns whether HTTP/2 cleartext is enabled
func (c *Config) IsH2CEnabled() bool {
	return c.Scheme.EnableH2C
}

// IsUnixSocketEnabled returns whether Unix socket is enabled
func (c *Config) IsUnixSocketEnabled() bool {
	return c.Scheme.UnixFile != ""
}
