package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("HOME", tmp)
	return tmp
}

func TestLoadAndGet(t *testing.T) {
	setupConfig(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "memory", Get("storage_backend", ""))
	require.Equal(t, 100, GetInt("max_history", 0))
	require.Equal(t, "ctrl+shift+v", Get("shortcut", ""))
	require.True(t, GetBool("mouse_enabled", false))
}

func TestDirsFollowXDG(t *testing.T) {
	tmp := setupConfig(t)
	Load()

	require.Equal(t, filepath.Join(tmp, "config", "cliptray"), Get("config_dir", ""))
	require.Equal(t, filepath.Join(tmp, "state", "cliptray"), Get("state_dir", ""))
}

func TestSampleConfigIsCreated(t *testing.T) {
	tmp := setupConfig(t)
	Load()

	data, err := os.ReadFile(filepath.Join(tmp, "config", "cliptray", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "# cliptray configuration")
	require.Contains(t, string(data), "max_history = 100")
}

func TestPrecedenceEnvOverFileOverDefaults(t *testing.T) {
	tmp := setupConfig(t)
	configFile := filepath.Join(tmp, "custom.toml")
	content := `
max_history = 500
storage_backend = "sqlite"
dropdown_items = 4
mouse_enabled = false
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))
	t.Setenv("CLIPTRAY_CONFIG_PATH", configFile)
	t.Setenv("CLIPTRAY_MAX_HISTORY", "20")

	Load()

	require.Equal(t, 20, GetInt("max_history", 0))
	require.Equal(t, "sqlite", Get("storage_backend", ""))
	require.Equal(t, 4, GetInt("dropdown_items", 0))
	require.False(t, GetBool("mouse_enabled", true))
	require.Equal(t, 250, GetInt("poll_interval_ms", 0))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupConfig(t)
	t.Setenv("CLIPTRAY_MAX_HISTORY", "-5")
	t.Setenv("CLIPTRAY_STORAGE_BACKEND", "redis")
	t.Setenv("CLIPTRAY_MOUSE_ENABLED", "maybe")
	t.Setenv("CLIPTRAY_LOGGING_LEVEL", "DEBUG")

	Load()

	require.Equal(t, 100, GetInt("max_history", 0))
	require.Equal(t, "memory", Get("storage_backend", ""))
	require.True(t, GetBool("mouse_enabled", false))
	require.Equal(t, "debug", Get("logging_level", ""))
}

func TestBoolNormalization(t *testing.T) {
	setupConfig(t)
	t.Setenv("CLIPTRAY_DEBUG", "yes")
	t.Setenv("CLIPTRAY_QUIET", "0")

	Load()

	require.Equal(t, "true", Get("debug", ""))
	require.False(t, GetBool("quiet", true))
}

func TestSetOverridesValue(t *testing.T) {
	setupConfig(t)
	Load()

	Set("storage_backend", "sqlite")
	require.Equal(t, "sqlite", Get("storage_backend", ""))
}

func TestValidators(t *testing.T) {
	v := PositiveIntValidator()
	got, err := v("k", "", "3")
	require.NoError(t, err)
	require.Equal(t, "3", got)
	got, _ = v("k", "abc", "3")
	require.Equal(t, "3", got)
	got, _ = v("k", "7", "3")
	require.Equal(t, "7", got)

	e := EnumValidator("a", "b")
	got, _ = e("k", "B", "a")
	require.Equal(t, "b", got)
	got, _ = e("k", "c", "a")
	require.Equal(t, "a", got)

	b := BoolValidator()
	got, _ = b("k", "on", "false")
	require.Equal(t, "true", got)
	got, _ = b("k", "nope", "false")
	require.Equal(t, "false", got)
}

func TestIntRangeValidator(t *testing.T) {
	v := IntRangeValidator(1, 50)
	tests := []struct {
		value string
		want  string
	}{
		{"", "8"},
		{"1", "1"},
		{" 50 ", "50"},
		{"0", "8"},
		{"51", "8"},
		{"-3", "8"},
		{"4.5", "8"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := v("dropdown_items", tt.value, "8")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOutOfRangeConfigFallsBackToDefault(t *testing.T) {
	tmp := setupConfig(t)
	path := filepath.Join(tmp, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("dropdown_items = 500\ntoast_seconds = 0\n"), 0o644))
	t.Setenv("CLIPTRAY_CONFIG_PATH", path)

	Load()

	require.Equal(t, 8, GetInt("dropdown_items", 0))
	require.Equal(t, 3, GetInt("toast_seconds", 0))
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	require.Panics(t, func() {
		RegisterValidator("max_history", PositiveIntValidator())
	})
}
