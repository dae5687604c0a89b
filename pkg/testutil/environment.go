// pkg/testutil/environment.go
// DEPENDENCIES: afero, pkg/filesystem, pkg/paths
// PURPOSE: Orchestrate test environments with isolated config and state

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fileconv/pkg/filesystem"
	"github.com/arthur-debert/fileconv/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides the filesystem and directories a test runs in
type TestEnvironment struct {
	// WorkDir is where test documents live
	WorkDir   string
	ConfigDir string
	StateDir  string

	// Afero is the filesystem handed to converters and commands
	Afero afero.Fs
	// FS wraps Afero with atomic writes
	FS filesystem.FS

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. Configuration and state
// directories always live on the real filesystem, in a temp directory, since
// the configuration loader reads them directly.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:         t,
		Type:      envType,
		ConfigDir: t.TempDir(),
		StateDir:  t.TempDir(),
	}

	switch envType {
	case EnvMemoryOnly:
		env.WorkDir = "/virtual/work"
		env.Afero = afero.NewMemMapFs()
	case EnvIsolated:
		env.WorkDir = filepath.Join(t.TempDir(), "work")
		env.Afero = afero.NewOsFs()
	default:
		t.Fatalf("unknown environment type %d", envType)
	}
	env.FS = filesystem.NewAferoFS(env.Afero)

	if err := env.FS.MkdirAll(env.WorkDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv("NO_COLOR", "1")
	// t.Setenv restores the original values on cleanup
	for _, name := range []string{"FILECONV_TARGET_FORMAT", "FILECONV_DIRECTIVE_LINES"} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}

	return env
}

// Path returns name joined to the work directory
func (env *TestEnvironment) Path(name string) string {
	return filepath.Join(env.WorkDir, name)
}

// WriteFile creates a file under the work directory and returns its path
func (env *TestEnvironment) WriteFile(name, content string) string {
	env.t.Helper()

	path := env.Path(name)
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of a file under the work directory
func (env *TestEnvironment) ReadFile(name string) string {
	env.t.Helper()

	data, err := env.FS.ReadFile(env.Path(name))
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists under the work directory
func (env *TestEnvironment) Exists(name string) bool {
	_, err := env.FS.Stat(env.Path(name))
	return err == nil
}

// WriteUserConfig stores content as the user configuration file
func (env *TestEnvironment) WriteUserConfig(content string) string {
	env.t.Helper()

	path := filepath.Join(env.ConfigDir, paths.ConfigFileName)
	if err := afero.WriteFile(afero.NewOsFs(), path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write user config: %v", err)
	}
	return path
}

// FileTree represents a directory structure for testing. Values are either
// file contents (string) or nested trees.
type FileTree map[string]interface{}

// WithFileTree creates a complete file tree under the work directory
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.WorkDir, tree)
}

func createFileTree(t *testing.T, fs filesystem.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
