package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CliConfig holds the flags that are not part of the config file.
type CliConfig struct {
	ConfigFile string
}

// BindFlags registers the shared flags on fs and binds the ones that map onto
// config keys so that flags override the file and the environment.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) *CliConfig {
	args := &CliConfig{}
	fs.StringVar(&args.ConfigFile, "config", "", "Path to the config file")
	fs.BoolP("debug", "d", false, "Enable debug mode")
	fs.String("predict-url", "", "Prediction API endpoint")
	fs.Duration("timeout", 0, "Prediction request timeout (0 disables it)")

	_ = v.BindPFlag("debug", fs.Lookup("debug"))
	_ = v.BindPFlag("predict_url", fs.Lookup("predict-url"))
	_ = v.BindPFlag("request_timeout", fs.Lookup("timeout"))
	return args
}

// BindServeFlags registers the flags only the page server understands.
func BindServeFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.String("listen", "", "Address the page server listens on")
	fs.String("wasm-dir", "", "Directory holding wasm_exec.js and urlcheck.wasm")
	_ = v.BindPFlag("listen_address", fs.Lookup("listen"))
	_ = v.BindPFlag("wasm_dir", fs.Lookup("wasm-dir"))
}
