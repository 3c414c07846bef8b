package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/pigeon-go/pigeon"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PIGEON_TOKEN", "PIGEON_HOST", "PIGEON_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIGEON_TOKEN", "pigeon-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pigeon-token", cfg.Token)
	assert.Equal(t, pigeon.DefaultHost, cfg.Host)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, pigeon.Config{Token: "pigeon-token", Host: pigeon.DefaultHost}, cfg.Client())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIGEON_TOKEN", "pigeon-token-2")
	t.Setenv("PIGEON_HOST", "https://pigeon.ngs.bz")
	t.Setenv("PIGEON_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://pigeon.ngs.bz", cfg.Host)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingToken(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PIGEON_TOKEN")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("PIGEON_TOKEN", "pigeon-token")
	t.Setenv("PIGEON_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PIGEON_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)
}

func TestParseBatch_YAML(t *testing.T) {
	data := []byte(`
- recipient: bob@example.com
  template: test_batch
  params:
    batch: "1"
    name: One
- recipient: alice@example.com
  template: test_batch
  params:
    batch: "2"
    name: Two
`)

	entries, err := ParseBatch(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, pigeon.Payload{
		"recipient": "bob@example.com",
		"template":  "test_batch",
		"params":    map[string]any{"batch": "1", "name": "One"},
	}, entries[0])
	assert.Equal(t, "alice@example.com", entries[1]["recipient"])
}

func TestParseBatch_JSON(t *testing.T) {
	data := []byte(`[
  {"target": "token", "recipient": "device-token-1", "template": "test_batch"},
  {"target": "token", "recipient": "device-token-2", "template": "test_batch", "driver": ""}
]`)

	entries, err := ParseBatch(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "device-token-1", entries[0]["recipient"])
	// empty values are forwarded untouched
	assert.Contains(t, entries[1], "driver")
}

func TestParseBatch_UnquotedPhone(t *testing.T) {
	data := []byte(`
- recipient: 0888888888
  template: test_batch
  params:
    1: one
    code: 007
    count: 3
    ratio: 0.5
    notify: true
    missing: ~
    date: 2024-01-31
    tags: [a, 0123]
`)

	entries, err := ParseBatch(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, pigeon.Payload{
		"recipient": "0888888888",
		"template":  "test_batch",
		"params": map[string]any{
			"1":       "one",
			"code":    "007",
			"count":   int64(3),
			"ratio":   0.5,
			"notify":  true,
			"missing": nil,
			"date":    "2024-01-31",
			"tags":    []any{"a", "0123"},
		},
	}, entries[0])

	body, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"recipient":"0888888888"`)
	assert.Contains(t, string(body), `"1":"one"`)
}

func TestParseBatch_JSONKeepsNumbers(t *testing.T) {
	data := []byte(`[{"recipient": "0888888888", "params": {"amount": 12345678901234567890, "ratio": 0.10}}]`)

	entries, err := ParseBatch(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	body, err := json.Marshal(entries[0]["params"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 12345678901234567890, "ratio": 0.10}`, string(body))
	assert.Contains(t, string(body), "12345678901234567890")
}

func TestParseBatch_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"empty list":   "[]",
		"not a list":   "recipient: bob@example.com",
		"list of ints": "- 1\n- 2",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBatch([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- recipient: \"0888888888\"\n  template: test_batch\n"), 0o600))

	entries, err := LoadBatchFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "0888888888", entries[0]["recipient"])

	_, err = LoadBatchFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
