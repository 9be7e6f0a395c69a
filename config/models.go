package config

import "time"

// Config holds the application configuration.
//
// PredictURL is the full URL of the remote prediction endpoint.
// RequestTimeout bounds a single prediction call; zero means no timeout.
// WasmDir, when set, is served at /wasm/ and must hold the browser build.
type Config struct {
	PredictURL     string        `mapstructure:"predict_url"`
	ListenAddress  string        `mapstructure:"listen_address"`
	Debug          bool          `mapstructure:"debug"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Proxy          ProxyConfig   `mapstructure:"proxy"`
	WasmDir        string        `mapstructure:"wasm_dir"`
}

// ProxyConfig controls how the page server forwards predictions upstream.
type ProxyConfig struct {
	MaxInFlight  int           `mapstructure:"max_in_flight"`
	QueueWait    time.Duration `mapstructure:"queue_wait"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}
