// Package gateway is the calling side of the directory: one HTTP
// surface that reaches the directory either through the binary
// transport (under /grpc) or through its REST API (under /rest).
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/config"
	dirgrpc "github.com/gauravscripts/empdir/grpc"
	"github.com/gauravscripts/empdir/rest"
	"github.com/gauravscripts/empdir/wiretap"
)

// Gateway routes caller requests onto the two directory transports.
type Gateway struct {
	viaGRPC empdir.Directory
	greeter empdir.Greeter
	viaREST empdir.Directory
	logger  zerolog.Logger
	closers []func() error
}

// New creates a gateway over already connected clients.
func New(viaGRPC empdir.Directory, greeter empdir.Greeter, viaREST empdir.Directory, logger zerolog.Logger) *Gateway {
	return &Gateway{
		viaGRPC: viaGRPC,
		greeter: greeter,
		viaREST: viaREST,
		logger:  logger.With().Str("component", "gateway").Logger(),
	}
}

// Dial connects both clients described by cfg. When tap is non-nil
// every outgoing gRPC request is captured.
func Dial(ctx context.Context, cfg config.Gateway, tap *wiretap.Tapper, logger zerolog.Logger) (*Gateway, error) {
	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if tap != nil {
		opts = append(opts, dirgrpc.DialOptions(tap)...)
	}
	grpcClient, err := dirgrpc.Dial(ctx, cfg.GRPCTarget, opts...)
	if err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	restClient := rest.NewClient(cfg.RESTTarget, &http.Client{Timeout: 10 * time.Second})

	g := New(grpcClient, grpcClient, restClient, logger)
	g.closers = []func() error{grpcClient.Close, restClient.Close}
	return g, nil
}

// RegisterRoutes adds the gateway routes to r.
//
//	GET  /grpc?name=...            greeting over gRPC
//	GET  /grpc/employee/{id}       POST /grpc/employee       GET /grpc/employees
//	GET  /rest/employee/{id}       POST /rest/employee       GET /rest/employees
func (g *Gateway) RegisterRoutes(r chi.Router) {
	r.Route("/grpc", func(r chi.Router) {
		r.Get("/", g.handleHello)
		rest.NewHandler(g.viaGRPC, g.logger).RegisterRoutes(r)
	})
	r.Route("/rest", func(r chi.Router) {
		rest.NewHandler(g.viaREST, g.logger).RegisterRoutes(r)
	})
}

func (g *Gateway) handleHello(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeText(w, http.StatusBadRequest, empdir.NewBadRequestError("name", "query parameter is required").Error())
		return
	}
	msg, err := g.greeter.SayHello(r.Context(), name)
	if err != nil {
		g.logger.Error().Err(err).Str("name", name).Msg("hello call failed")
		writeText(w, http.StatusBadGateway, "hello service unavailable")
		return
	}
	writeText(w, http.StatusOK, msg)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Close closes the clients opened by Dial.
func (g *Gateway) Close() error {
	var errs []error
	for _, c := range g.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
