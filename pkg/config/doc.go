// Package config loads fileconv's layered configuration.
//
// Sources are applied in order, later ones overriding earlier ones:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/fileconv/config.toml
//  3. a project file, .fileconv.toml in the working directory
//  4. FILECONV_* environment variables
//
// The result is decoded into Config, which supplies the default target
// format and the default load and dump parameters of every format.
package config
