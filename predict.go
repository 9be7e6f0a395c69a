package main

import (
	"github.com/spf13/cobra"

	"urlcheck/backend"
	"urlcheck/config"
	"urlcheck/form"
)

func newPredictCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "predict <url>",
		Short: "Submit one URL and print each model's prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			client := backend.NewClient(cfg.PredictURL, backend.WithTimeout(cfg.RequestTimeout))
			view := form.NewTextView(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
			h, err := form.NewHandler(client, view)
			if err != nil {
				return err
			}
			return h.Submit(cmd.Context(), nil)
		},
	}
}
