package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"urlcheck/config"
	"urlcheck/handler"
	"urlcheck/logging"
	"urlcheck/manager"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(v *viper.Viper, load func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the URL form and proxy predictions to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	config.BindServeFlags(cmd.Flags(), v)
	return cmd
}

// serve runs the page server until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.GetLogger()

	limiter := manager.NewLimiter("predict", cfg.Proxy.MaxInFlight, cfg.Proxy.QueueWait)
	defer limiter.Shutdown()

	proxy, err := handler.NewPredictProxy(limiter, cfg.PredictURL, cfg.Proxy.Timeout, cfg.Proxy.MaxBodyBytes)
	if err != nil {
		return err
	}

	if cfg.WasmDir == "" {
		log.Warnln("wasm_dir is not set, the page will not be able to submit predictions")
	}

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler.NewServer(proxy, handler.PageOptions{WasmDir: cfg.WasmDir}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting server on %s, predictions go to %s", cfg.ListenAddress, cfg.PredictURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infoln("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
