package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the command-line overrides. Only flags the user actually
// set are applied.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string
	DotEnvPath string

	grpcAddr    string
	httpAddr    string
	gatewayAddr string
	grpcTarget  string
	restTarget  string
	logLevel    string
	logFormat   string
	wiretap     bool
	seed        bool
	restBackend string
	metrics     bool
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to a TOML config file")
	fs.StringVar(&f.DotEnvPath, "env-file", ".env", "path to a .env file (ignored when missing)")
	fs.StringVar(&f.grpcAddr, "grpc-addr", d.GRPC.Addr, "gRPC listen address")
	fs.StringVar(&f.httpAddr, "http-addr", d.HTTP.Addr, "REST listen address")
	fs.StringVar(&f.gatewayAddr, "gateway-addr", d.Gateway.Addr, "gateway listen address")
	fs.StringVar(&f.grpcTarget, "grpc-target", d.Gateway.GRPCTarget, "gRPC address the gateway calls")
	fs.StringVar(&f.restTarget, "rest-target", d.Gateway.RESTTarget, "REST base URL the gateway calls")
	fs.StringVar(&f.logLevel, "log-level", d.Log.Level, "log level (debug, info, warn, error, disabled)")
	fs.StringVar(&f.logFormat, "log-format", d.Log.Format, "log format (json, console)")
	fs.BoolVar(&f.wiretap, "wiretap", d.Wiretap.Enabled, "log hex dumps of gRPC messages")
	fs.BoolVar(&f.seed, "seed", d.Directory.Seed, "preload the sample employee")
	fs.StringVar(&f.restBackend, "rest-backend", d.Directory.RESTBackend, "REST backend (local, grpc)")
	fs.BoolVar(&f.metrics, "metrics", d.Metrics.Enabled, "serve Prometheus metrics at /metrics")
	return f
}

// Apply overlays the flags the user set onto cfg.
func (f *Flags) Apply(cfg *Config) {
	set := func(name string, apply func()) {
		if f.fs.Changed(name) {
			apply()
		}
	}
	set("grpc-addr", func() { cfg.GRPC.Addr = f.grpcAddr })
	set("http-addr", func() { cfg.HTTP.Addr = f.httpAddr })
	set("gateway-addr", func() { cfg.Gateway.Addr = f.gatewayAddr })
	set("grpc-target", func() { cfg.Gateway.GRPCTarget = f.grpcTarget })
	set("rest-target", func() { cfg.Gateway.RESTTarget = f.restTarget })
	set("log-level", func() { cfg.Log.Level = f.logLevel })
	set("log-format", func() { cfg.Log.Format = f.logFormat })
	set("wiretap", func() { cfg.Wiretap.Enabled = f.wiretap })
	set("seed", func() { cfg.Directory.Seed = f.seed })
	set("rest-backend", func() { cfg.Directory.RESTBackend = f.restBackend })
	set("metrics", func() { cfg.Metrics.Enabled = f.metrics })
}
