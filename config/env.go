package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "EMPDIR_"

// LoadDotEnv loads KEY=VALUE pairs from path into the process
// environment. Variables already set win. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays EMPDIR_* variables onto cfg. lookup is usually
// os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int64) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}

	str("GRPC_ADDR", &cfg.GRPC.Addr)
	str("HTTP_ADDR", &cfg.HTTP.Addr)
	integer("HTTP_MAX_BODY_BYTES", &cfg.HTTP.MaxBodyBytes)
	str("GATEWAY_ADDR", &cfg.Gateway.Addr)
	str("GATEWAY_GRPC_TARGET", &cfg.Gateway.GRPCTarget)
	str("GATEWAY_REST_TARGET", &cfg.Gateway.RESTTarget)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	boolean("WIRETAP_ENABLED", &cfg.Wiretap.Enabled)
	boolean("DIRECTORY_SEED", &cfg.Directory.Seed)
	str("DIRECTORY_REST_BACKEND", &cfg.Directory.RESTBackend)
	boolean("METRICS_ENABLED", &cfg.Metrics.Enabled)

	return errors.Join(errs...)
}

// Load builds a configuration from defaults, the optional TOML file
// at path, the optional .env file at dotenv and the process
// environment. Flags are applied by the caller afterwards, followed
// by Validate.
func Load(path, dotenv string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if dotenv != "" {
		if err := LoadDotEnv(dotenv); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}
