// Package config loads the runtime settings of the directory daemon
// and the gateway.
//
// Settings are layered: built-in defaults, then an optional TOML file
// (only keys present in the file override), then a .env file and
// EMPDIR_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// REST backends.
const (
	// BackendLocal serves REST straight from the shared directory.
	BackendLocal = "local"
	// BackendGRPC serves REST by calling the binary service.
	BackendGRPC = "grpc"
)

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config is the complete runtime configuration.
type Config struct {
	GRPC      GRPC
	HTTP      HTTP
	Gateway   Gateway
	Log       Log
	Wiretap   Wiretap
	Directory Directory
	Metrics   Metrics
}

// GRPC configures the binary transport listener.
type GRPC struct {
	Addr string
}

// HTTP configures the REST listener.
type HTTP struct {
	Addr string
	// Requests with larger bodies are rejected before decoding.
	MaxBodyBytes int64
}

// Gateway configures the caller-side gateway and the targets it
// calls.
type Gateway struct {
	Addr       string
	GRPCTarget string
	RESTTarget string
}

// Log configures the process logger.
type Log struct {
	Level  string
	Format string
}

// Wiretap toggles hex capture of binary transport messages.
type Wiretap struct {
	Enabled bool
}

// Directory configures the directory service.
type Directory struct {
	// Preload the sample record at startup.
	Seed bool
	// BackendLocal or BackendGRPC.
	RESTBackend string
}

// Metrics toggles the Prometheus endpoint.
type Metrics struct {
	Enabled bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GRPC: GRPC{Addr: ":9090"},
		HTTP: HTTP{Addr: ":8080", MaxBodyBytes: 1 << 20},
		Gateway: Gateway{
			Addr:       ":8081",
			GRPCTarget: "127.0.0.1:9090",
			RESTTarget: "http://127.0.0.1:8080",
		},
		Log:       Log{Level: "info", Format: FormatJSON},
		Wiretap:   Wiretap{Enabled: true},
		Directory: Directory{Seed: false, RESTBackend: BackendLocal},
		Metrics:   Metrics{Enabled: true},
	}
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.GRPC.Addr) == "" {
		errs = append(errs, errors.New("grpc.addr must not be empty"))
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr must not be empty"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}
	if strings.TrimSpace(c.Gateway.Addr) == "" {
		errs = append(errs, errors.New("gateway.addr must not be empty"))
	}
	if strings.TrimSpace(c.Gateway.GRPCTarget) == "" {
		errs = append(errs, errors.New("gateway.grpc_target must not be empty"))
	}
	if strings.TrimSpace(c.Gateway.RESTTarget) == "" {
		errs = append(errs, errors.New("gateway.rest_target must not be empty"))
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case FormatJSON, FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("log.format: expected %q or %q, got %q", FormatJSON, FormatConsole, c.Log.Format))
	}
	switch c.Directory.RESTBackend {
	case BackendLocal, BackendGRPC:
	default:
		errs = append(errs, fmt.Errorf("directory.rest_backend: expected %q or %q, got %q", BackendLocal, BackendGRPC, c.Directory.RESTBackend))
	}
	return errors.Join(errs...)
}
