package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
predict_url: https://predict.example.com/predict
listen_address: 0.0.0.0:9000
request_timeout: 5s
proxy:
  max_in_flight: 3
`), 0o600))

	c, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://predict.example.com/predict", c.PredictURL)
	assert.Equal(t, "0.0.0.0:9000", c.ListenAddress)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, 3, c.Proxy.MaxInFlight)
	assert.Equal(t, 99*time.Second, c.Proxy.Timeout)
	assert.Equal(t, int64(64<<10), c.Proxy.MaxBodyBytes)
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("URLCHECK_PREDICT_URL", "http://localhost:5000/predict")
	t.Setenv("URLCHECK_PROXY_MAX_IN_FLIGHT", "7")

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/predict", c.PredictURL)
	assert.Equal(t, "127.0.0.1:8080", c.ListenAddress)
	assert.Equal(t, time.Duration(0), c.RequestTimeout)
	assert.Equal(t, 7, c.Proxy.MaxInFlight)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("URLCHECK_PREDICT_URL", "http://from-env/predict")

	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	args := BindFlags(fs, v)
	BindServeFlags(fs, v)
	require.NoError(t, fs.Parse([]string{"--predict-url", "http://from-flag/predict", "--listen", ":1234", "-d", "--config", ""}))
	assert.Equal(t, "", args.ConfigFile)

	c, err := Load(v, args.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag/predict", c.PredictURL)
	assert.Equal(t, ":1234", c.ListenAddress)
	assert.True(t, c.Debug)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	valid := Config{
		PredictURL: "https://predict.example.com/predict",
		Proxy:      ProxyConfig{MaxInFlight: 1, QueueWait: time.Second, MaxBodyBytes: 1},
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"missing url":      func(c *Config) { c.PredictURL = "" },
		"relative url":     func(c *Config) { c.PredictURL = "/predict" },
		"bad scheme":       func(c *Config) { c.PredictURL = "ftp://host/predict" },
		"negative timeout": func(c *Config) { c.RequestTimeout = -time.Second },
		"no in flight":     func(c *Config) { c.Proxy.MaxInFlight = 0 },
		"no queue wait":    func(c *Config) { c.Proxy.QueueWait = 0 },
		"negative wait":    func(c *Config) { c.Proxy.QueueWait = -time.Second },
		"no body":          func(c *Config) { c.Proxy.MaxBodyBytes = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
