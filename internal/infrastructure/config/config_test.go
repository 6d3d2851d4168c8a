package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/postview/internal/application/settings"
)

func TestLoad_Defaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	store, err := Load(configPath)
	require.NoError(t, err)

	cfg := store.Settings
	assert.Equal(t, settings.DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, settings.FormatJSON, cfg.Source.Format)
	assert.Equal(t, 30, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "k", cfg.KeyMap.Up)
	assert.Equal(t, "ctrl+d", cfg.KeyMap.DownPage)
	assert.Equal(t, "enter,space", cfg.KeyMap.Select)
	assert.Equal(t, "/,tab", cfg.KeyMap.Search)
	assert.Equal(t, "#4CAF50", cfg.Theme.Accent)
	assert.Equal(t, "#D32F2F", cfg.Theme.Error)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	require.NoError(t, cfg.Check())

	assert.False(t, store.Exists(), "loading defaults must not create the file")
	assert.Equal(t, configPath, store.Path())
}

func TestLoad_NestedYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `source:
  url: " https://example.com/feed.xml "
  format: FEED
  timeout_seconds: 5
keymap:
  up_page: pgup
  select: x
log:
  level: debug
  file: /tmp/postview.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	store, err := Load(configPath)
	require.NoError(t, err)

	cfg := store.Settings
	assert.Equal(t, "https://example.com/feed.xml", cfg.Source.URL)
	assert.Equal(t, settings.FormatFeed, cfg.Source.Format)
	assert.Equal(t, 5, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "pgup", cfg.KeyMap.UpPage)
	assert.Equal(t, "x", cfg.KeyMap.Select)
	assert.Equal(t, "j", cfg.KeyMap.Down, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/postview.log", cfg.Log.File)
}

func TestLoad_DoesNotRejectInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `source:
  url: ""
  format: JSON
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	store, err := Load(configPath)
	require.NoError(t, err)
	assert.Empty(t, store.Settings.Source.URL)
	assert.Equal(t, settings.FormatJSON, store.Settings.Source.Format)
	require.Error(t, store.Settings.Check())
}

func TestLoad_EmptyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, nil, 0600))

	store, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultSourceURL, store.Settings.Source.URL)
}

func TestLoad_Corrupt(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600))

	_, err := Load(configPath)
	require.Error(t, err)
}

func TestLoad_DefaultPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	store, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "postview", "config.yaml"), store.Path())
}

func TestStore_SaveRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	store, err := Load(configPath)
	require.NoError(t, err)

	store.Settings.Source.URL = "https://example.com/posts"
	store.Settings.Theme.Accent = "205"
	require.NoError(t, store.Save())
	require.True(t, store.Exists())

	reloaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, store.Settings, reloaded.Settings)
}

func TestDefaults_IgnoresExistingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("source:\n  format: feed\n"), 0o600))

	store, err := Defaults(configPath)
	require.NoError(t, err)
	assert.Equal(t, settings.FormatJSON, store.Settings.Source.Format)
	assert.Equal(t, configPath, store.Path())
	assert.True(t, store.Exists())
}

func TestStore_Encode(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.Encode(&buf))

	out := buf.String()
	assert.Contains(t, out, "source:")
	assert.Contains(t, out, "url: https://jsonplaceholder.typicode.com/posts")
	assert.Contains(t, out, "timeout_seconds: 30")
}

func TestLookup(t *testing.T) {
	values := map[string]any{
		"flat": 1,
		"a":    map[string]any{"b": map[string]any{"c": "deep"}},
	}

	v, ok := lookup(values, "flat")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = lookup(values, "a.b.c")
	assert.True(t, ok)
	assert.Equal(t, "deep", v)

	_, ok = lookup(values, "a.x.c")
	assert.False(t, ok)
	_, ok = lookup(values, "missing")
	assert.False(t, ok)
}

func TestLoad_TOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `[source]
url = "https://example.com/feed.xml"
format = "feed"
timeout_seconds = 5

[theme]
accent = "205"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	store, err := Load(configPath)
	require.NoError(t, err)

	cfg := store.Settings
	assert.Equal(t, "https://example.com/feed.xml", cfg.Source.URL)
	assert.Equal(t, settings.FormatFeed, cfg.Source.Format)
	assert.Equal(t, 5, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "205", cfg.Theme.Accent)
	assert.Equal(t, "j", cfg.KeyMap.Down)
}

func TestStore_SaveRoundTripTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	store, err := Defaults(configPath)
	require.NoError(t, err)

	store.Settings.KeyMap.Quit = "x"
	require.NoError(t, store.Save())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[keymap]")
	assert.Contains(t, string(data), "quit = ")

	reloaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, store.Settings, reloaded.Settings)
}

func TestStore_EncodeAs(t *testing.T) {
	store, err := Defaults(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.EncodeAs(&buf, FormatTOML))
	assert.Contains(t, buf.String(), "[source]")

	buf.Reset()
	require.NoError(t, store.EncodeAs(&buf, "YAML"))
	assert.Contains(t, buf.String(), "source:")

	require.Error(t, store.EncodeAs(&buf, "ini"))
}
