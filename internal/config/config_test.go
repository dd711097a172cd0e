package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := &Config{}
	assert.Empty(t, c.VaultPaths())
	assert.Equal(t, DefaultWebSearchCommand, c.WebSearchCommand())
	assert.Equal(t, DefaultFallbackModel, c.FallbackModel())
	assert.Equal(t, DefaultUserAgent, c.UserAgent())
	assert.Equal(t, int64(DefaultMaxBody), c.MaxBody())
	assert.Equal(t, DefaultMaxPath, c.MaxPath())
	assert.Equal(t, int64(DefaultMaxContent), c.MaxContent())

	for _, k := range ValidKeys() {
		assert.False(t, c.IsSet(k), k)
	}
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"vault.paths", "~/notes, /srv/wiki ,", "~/notes,/srv/wiki"},
		{"modules.disabled", "websearch,docgen", "websearch,docgen"},
		{"websearch.command", "  gemini --yolo ", "gemini --yolo"},
		{"websearch.fallback_model", "gemini-2.0-flash", "gemini-2.0-flash"},
		{"fetch.user_agent", "bot/1.0", "bot/1.0"},
		{"fetch.max_body", "2048", "2048"},
		{"limits.max_path", "512", "512"},
		{"limits.max_content", "4096", "4096"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := &Config{}
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, c.IsSet(tt.key))
			assert.Equal(t, tt.want, c.All()[tt.key])
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	c := &Config{}
	assert.ErrorIs(t, c.Set("fetch.max_body", "10"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("fetch.max_body", "lots"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_path", "0"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_content", "-1"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("nope", "x"), ErrUnknownKey)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, IsValidKey("nope"))
	assert.True(t, IsValidKey("vault.paths"))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b"))
}

func TestLoadScope_Global(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeGlobal, cfg.Scope())
	assert.Empty(t, cfg.VaultPaths())

	require.NoError(t, cfg.Set("vault.paths", "/a,/b"))
	require.NoError(t, cfg.Save())
	assert.FileExists(t, filepath.Join(home, Dir, "config.yaml"))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, cfg.VaultPaths())
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	global, err := LoadScope(ScopeGlobal)
	require.NoError(t, err)
	require.NoError(t, global.Set("websearch.command", "global-cmd"))
	require.NoError(t, global.Save())

	local, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, local.Set("websearch.command", "local-cmd"))
	require.NoError(t, local.Save())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, cfg.Scope())
	assert.Equal(t, "local-cmd", cfg.WebSearchCommand())
}

func TestLoad_Malformed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(Dir, 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("vault: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}

func TestLoad_OutOfBounds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	require.NoError(t, os.MkdirAll(Dir, 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("fetch:\n  max_body: 1\n"), 0644))

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
