package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. URLCHECK_PREDICT_URL.
const EnvPrefix = "URLCHECK"

// SetDefaults installs the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("predict_url", "")
	v.SetDefault("debug", false)
	v.SetDefault("wasm_dir", "")
	v.SetDefault("listen_address", "127.0.0.1:8080")
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("proxy.max_in_flight", 10)
	v.SetDefault("proxy.queue_wait", 75*time.Second)
	v.SetDefault("proxy.timeout", 99*time.Second)
	v.SetDefault("proxy.max_body_bytes", int64(64<<10))
}

// Load reads the optional config file and the environment into a validated
// Config. Flags must already be bound to v.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the fields every command depends on.
func (c *Config) Validate() error {
	if c.PredictURL == "" {
		return errors.New("predict_url is required")
	}
	u, err := url.Parse(c.PredictURL)
	if err != nil {
		return fmt.Errorf("predict_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("predict_url must be an absolute http(s) URL, got %q", c.PredictURL)
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must not be negative")
	}
	if c.Proxy.MaxInFlight <= 0 {
		return fmt.Errorf("proxy.max_in_flight must be positive, got %d", c.Proxy.MaxInFlight)
	}
	if c.Proxy.QueueWait <= 0 {
		return fmt.Errorf("proxy.queue_wait must be positive, got %s", c.Proxy.QueueWait)
	}
	if c.Proxy.MaxBodyBytes <= 0 {
		return fmt.Errorf("proxy.max_body_bytes must be positive, got %d", c.Proxy.MaxBodyBytes)
	}
	return nil
}
