// Package paths provides centralized path handling for fileconv.
//
// It implements the XDG Base Directory specification for the few locations
// fileconv touches outside of the files it converts:
//
//   - Config: $XDG_CONFIG_HOME/fileconv/config.toml (user configuration)
//   - State: $XDG_STATE_HOME/fileconv/fileconv.log (log file)
//
// # Environment Variables
//
//   - FILECONV_CONFIG_DIR: Override the config directory
//   - FILECONV_STATE_DIR: Override the state directory
//
// A project-local ".fileconv.toml" in the working directory is layered on
// top of the user configuration by pkg/config.
package paths
