package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/custom/config")
		assert.Equal(t, "/custom/config", ConfigDir())
		assert.Equal(t, "/custom/config/config.toml", ConfigFilePath())
	})

	t.Run("xdg default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		assert.Equal(t, filepath.Join(xdg.ConfigHome, "fileconv"), ConfigDir())
	})
}

func TestStateDir(t *testing.T) {
	t.Run("env override with home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		t.Setenv(EnvStateDir, "~/state")
		assert.Equal(t, filepath.Join(home, "state"), StateDir())
	})

	t.Run("xdg default", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		assert.Equal(t, filepath.Join(xdg.StateHome, "fileconv"), StateDir())
	})
}

func TestNormalizePath(t *testing.T) {
	_, err := NormalizePath("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	got, err := NormalizePath("/tmp/../tmp/a.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.json", got)

	rel, err := NormalizePath("a.yaml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(rel))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/x.plist", filepath.Join(home, "x.plist")},
		{"~other/x", "~other/x"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
