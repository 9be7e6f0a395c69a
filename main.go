package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"urlcheck/config"
	"urlcheck/logging"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "urlcheck",
		Short:         "Ask a prediction API what it thinks of a URL",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	args := config.BindFlags(root.PersistentFlags(), v)

	load := func() (*config.Config, error) {
		cfg, err := config.Load(v, args.ConfigFile)
		if err != nil {
			return nil, err
		}
		if cfg.Debug {
			logging.InitLogger(logrus.DebugLevel)
		} else {
			logging.InitLogger(logrus.InfoLevel)
		}
		return cfg, nil
	}

	root.AddCommand(newServeCmd(v, load), newPredictCmd(load))
	return root
}

func main() {
	log := logging.GetLogger()
	if err := newRootCmd().Execute(); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}
