// directoryd serves the employee directory over gRPC and JSON/HTTP
// from one shared in-memory store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/config"
	dirgrpc "github.com/gauravscripts/empdir/grpc"
	"github.com/gauravscripts/empdir/logging"
	"github.com/gauravscripts/empdir/metrics"
	"github.com/gauravscripts/empdir/rest"
	"github.com/gauravscripts/empdir/server"
	"github.com/gauravscripts/empdir/store"
	"github.com/gauravscripts/empdir/wiretap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "directoryd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("directoryd", pflag.ContinueOnError)
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

	logger, err := logging.New("directoryd", cfg.Log, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(store.New(), logger)
	if cfg.Directory.Seed {
		if _, err := srv.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	var tap *wiretap.Tapper
	if cfg.Wiretap.Enabled {
		tap = dirgrpc.NewTapper(wiretap.NewLogSink(logger), logger)
	}

	// Binary transport.
	var serverOpts []grpc.ServerOption
	if tap != nil {
		serverOpts = dirgrpc.ServerOptions(tap)
	}
	grpcServer := grpc.NewServer(serverOpts...)
	dirgrpc.NewGRPCServer(srv, srv).Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", cfg.GRPC.Addr, err)
	}

	// REST transport, served from the shared directory or through the
	// binary service.
	var restDir empdir.Directory = srv
	if cfg.Directory.RESTBackend == config.BackendGRPC {
		client, err := dialSelf(ctx, lis, tap)
		if err != nil {
			return err
		}
		defer client.Close()
		restDir = client
	}

	router := rest.NewRouter(logger, cfg.HTTP.MaxBodyBytes)
	rest.NewHandler(restDir, logger).RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle("/metrics", metrics.Handler())
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", lis.Addr().String()).Bool("wiretap", tap != nil).Msg("grpc listening")
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		logger.Info().Str("addr", cfg.HTTP.Addr).Str("backend", cfg.Directory.RESTBackend).Msg("http listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(logger, grpcServer, httpServer)
	})
	return g.Wait()
}

// dialSelf connects to the gRPC listener of this process for the
// proxy REST backend.
func dialSelf(ctx context.Context, lis net.Listener, tap *wiretap.Tapper) (*dirgrpc.Client, error) {
	target := lis.Addr().String()
	if tcp, ok := lis.Addr().(*net.TCPAddr); ok {
		target = net.JoinHostPort("127.0.0.1", strconv.Itoa(tcp.Port))
	}
	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if tap != nil {
		opts = append(opts, dirgrpc.DialOptions(tap)...)
	}
	client, err := dirgrpc.Dial(ctx, target, opts...)
	if err != nil {
		return nil, fmt.Errorf("rest backend: %w", err)
	}
	return client, nil
}

func shutdown(logger zerolog.Logger, grpcServer *grpc.Server, httpServer *http.Server) error {
	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	err := httpServer.Shutdown(ctx)
	select {
	case <-stopped:
	case <-ctx.Done():
		grpcServer.Stop()
	}
	return err
}
