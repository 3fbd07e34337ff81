// gateway is the calling side of the employee directory. It exposes
// /grpc/... routes served through the binary transport and /rest/...
// routes served through the directory's REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/gauravscripts/empdir/config"
	"github.com/gauravscripts/empdir/gateway"
	dirgrpc "github.com/gauravscripts/empdir/grpc"
	"github.com/gauravscripts/empdir/logging"
	"github.com/gauravscripts/empdir/metrics"
	"github.com/gauravscripts/empdir/rest"
	"github.com/gauravscripts/empdir/wiretap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("gateway", pflag.ContinueOnError)
	flags := config.RegisterFlags(flagSet)
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags.ConfigPath, flags.DotEnvPath)
	if err != nil {
		return err
	}
	flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New("gateway", cfg.Log, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var tap *wiretap.Tapper
	if cfg.Wiretap.Enabled {
		tap = dirgrpc.NewTapper(wiretap.NewLogSink(logger), logger)
	}
	gw, err := gateway.Dial(ctx, cfg.Gateway, tap, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	router := rest.NewRouter(logger, cfg.HTTP.MaxBodyBytes)
	gw.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle("/metrics", metrics.Handler())
	}
	httpServer := &http.Server{
		Addr:              cfg.Gateway.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Gateway.Addr).
			Str("grpc_target", cfg.Gateway.GRPCTarget).
			Str("rest_target", cfg.Gateway.RESTTarget).
			Msg("gateway listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
