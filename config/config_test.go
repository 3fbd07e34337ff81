package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFile_OnlyDefinedKeysOverride(t *testing.T) {
	path := writeFile(t, "empdir.toml", `
[grpc]
addr = "127.0.0.1:7000"

[log]
level = "DEBUG"

[wiretap]
enabled = false

[directory]
seed = true
rest_backend = "grpc"
`)
	cfg := Default()
	require.NoError(t, LoadFile(&cfg, path))

	require.Equal(t, "127.0.0.1:7000", cfg.GRPC.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
	require.False(t, cfg.Wiretap.Enabled)
	require.True(t, cfg.Directory.Seed)
	require.Equal(t, BackendGRPC, cfg.Directory.RESTBackend)

	// Untouched keys keep their defaults.
	d := Default()
	require.Equal(t, d.HTTP, cfg.HTTP)
	require.Equal(t, d.Gateway, cfg.Gateway)
	require.Equal(t, d.Log.Format, cfg.Log.Format)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	require.Error(t, LoadFile(&cfg, filepath.Join(t.TempDir(), "missing.toml")))

	bad := writeFile(t, "bad.toml", "[grpc\naddr = 1")
	require.Error(t, LoadFile(&cfg, bad))

	unknown := writeFile(t, "unknown.toml", "[grpc]\nport = 9090\n")
	err := LoadFile(&cfg, unknown)
	require.Error(t, err)
	require.Contains(t, err.Error(), "grpc.port")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, mapLookup(map[string]string{
		"EMPDIR_HTTP_ADDR":           " :9999 ",
		"EMPDIR_HTTP_MAX_BODY_BYTES": "2048",
		"EMPDIR_METRICS_ENABLED":     "false",
		"EMPDIR_DIRECTORY_SEED":      "1",
		"UNRELATED":                  "x",
	}))
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.HTTP.Addr)
	require.Equal(t, int64(2048), cfg.HTTP.MaxBodyBytes)
	require.False(t, cfg.Metrics.Enabled)
	require.True(t, cfg.Directory.Seed)
}

func TestApplyEnv_ReportsBadValues(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, mapLookup(map[string]string{
		"EMPDIR_WIRETAP_ENABLED":     "maybe",
		"EMPDIR_HTTP_MAX_BODY_BYTES": "lots",
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "EMPDIR_WIRETAP_ENABLED")
	require.Contains(t, err.Error(), "EMPDIR_HTTP_MAX_BODY_BYTES")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	const key = "EMPDIR_TEST_DOTENV_MARKER"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=from-dotenv\n")
	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-dotenv", os.Getenv(key))
}

func TestFlags_OnlyChangedApply(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", "x.toml", "--http-addr", ":1234", "--seed"}))

	cfg := Default()
	cfg.GRPC.Addr = ":7777" // from an earlier layer
	flags.Apply(&cfg)

	require.Equal(t, "x.toml", flags.ConfigPath)
	require.Equal(t, ":1234", cfg.HTTP.Addr)
	require.True(t, cfg.Directory.Seed)
	require.Equal(t, ":7777", cfg.GRPC.Addr, "unset flags must not reset earlier layers")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.GRPC.Addr = " "
	cfg.Log.Format = "xml"
	cfg.Log.Level = "loud"
	cfg.Directory.RESTBackend = "soap"
	cfg.HTTP.MaxBodyBytes = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"grpc.addr", "log.format", "log.level", "directory.rest_backend", "http.max_body_bytes"} {
		require.Contains(t, err.Error(), want)
	}
}
