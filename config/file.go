package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig maps empdir.toml keys to settings.
type fileConfig struct {
	GRPC struct {
		Addr string `toml:"addr"`
	} `toml:"grpc"`
	HTTP struct {
		Addr         string `toml:"addr"`
		MaxBodyBytes int64  `toml:"max_body_bytes"`
	} `toml:"http"`
	Gateway struct {
		Addr       string `toml:"addr"`
		GRPCTarget string `toml:"grpc_target"`
		RESTTarget string `toml:"rest_target"`
	} `toml:"gateway"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Wiretap struct {
		Enabled bool `toml:"enabled"`
	} `toml:"wiretap"`
	Directory struct {
		Seed        bool   `toml:"seed"`
		RESTBackend string `toml:"rest_backend"`
	} `toml:"directory"`
	Metrics struct {
		Enabled bool `toml:"enabled"`
	} `toml:"metrics"`
}

// LoadFile overlays the TOML file at path onto cfg. Keys absent from
// the file keep their current value. Unknown keys are an error.
func LoadFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("grpc", "addr") {
		cfg.GRPC.Addr = strings.TrimSpace(raw.GRPC.Addr)
	}
	if meta.IsDefined("http", "addr") {
		cfg.HTTP.Addr = strings.TrimSpace(raw.HTTP.Addr)
	}
	if meta.IsDefined("http", "max_body_bytes") {
		cfg.HTTP.MaxBodyBytes = raw.HTTP.MaxBodyBytes
	}
	if meta.IsDefined("gateway", "addr") {
		cfg.Gateway.Addr = strings.TrimSpace(raw.Gateway.Addr)
	}
	if meta.IsDefined("gateway", "grpc_target") {
		cfg.Gateway.GRPCTarget = strings.TrimSpace(raw.Gateway.GRPCTarget)
	}
	if meta.IsDefined("gateway", "rest_target") {
		cfg.Gateway.RESTTarget = strings.TrimSpace(raw.Gateway.RESTTarget)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(raw.Log.Level))
	}
	if meta.IsDefined("log", "format") {
		cfg.Log.Format = strings.ToLower(strings.TrimSpace(raw.Log.Format))
	}
	if meta.IsDefined("wiretap", "enabled") {
		cfg.Wiretap.Enabled = raw.Wiretap.Enabled
	}
	if meta.IsDefined("directory", "seed") {
		cfg.Directory.Seed = raw.Directory.Seed
	}
	if meta.IsDefined("directory", "rest_backend") {
		cfg.Directory.RESTBackend = strings.ToLower(strings.TrimSpace(raw.Directory.RESTBackend))
	}
	if meta.IsDefined("metrics", "enabled") {
		cfg.Metrics.Enabled = raw.Metrics.Enabled
	}
	return nil
}
