package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := parseFlags(nil)

		require.NoError(t, err)
		assert.Empty(t, opts.migrate)
		assert.Equal(t, ".", opts.configDir)
		assert.Equal(t, ".env", opts.envFile)
	})

	t.Run("migration command", func(t *testing.T) {
		opts, err := parseFlags([]string{"-migrate", "status", "-config-dir", "/etc/scry"})

		require.NoError(t, err)
		assert.Equal(t, "status", opts.migrate)
		assert.Equal(t, "/etc/scry", opts.configDir)
	})

	t.Run("unknown migration command", func(t *testing.T) {
		_, err := parseFlags([]string{"-migrate", "redo"})

		assert.Error(t, err)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseFlags([]string{"-verbose"})

		assert.Error(t, err)
	})
}

func TestIsMigrationCommand(t *testing.T) {
	for _, cmd := range []string{"up", "down", "status", "version"} {
		assert.True(t, isMigrationCommand(cmd), cmd)
	}
	assert.False(t, isMigrationCommand("reset"))
	assert.False(t, isMigrationCommand(""))
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		assert.NoError(t, loadEnvFile(""))
	})

	t.Run("loads variables without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path,
			[]byte("SCRY_TEST_FROM_FILE=loaded\nSCRY_TEST_PRESET=file\n"), 0o600))
		t.Setenv("SCRY_TEST_PRESET", "env")
		t.Setenv("SCRY_TEST_FROM_FILE", "")
		require.NoError(t, os.Unsetenv("SCRY_TEST_FROM_FILE"))

		require.NoError(t, loadEnvFile(path))

		assert.Equal(t, "loaded", os.Getenv("SCRY_TEST_FROM_FILE"))
		assert.Equal(t, "env", os.Getenv("SCRY_TEST_PRESET"))
	})
}
