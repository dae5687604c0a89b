package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fileconv/pkg/errors"
	"github.com/arthur-debert/fileconv/pkg/logging"
	"github.com/arthur-debert/fileconv/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment variables read as configuration.
const EnvPrefix = "FILECONV_"

// sections are the tables whose keys can be set as FILECONV_<SECTION>_<KEY>.
var sections = []string{"json", "yaml", "plist", "logging"}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// UserFile replaces the XDG user configuration file.
	UserFile string
	// LocalDir is searched for .fileconv.toml. Defaults to the working
	// directory.
	LocalDir string
	// Overrides are applied last, as dotted keys ("json.indent").
	Overrides map[string]interface{}

	SkipUser  bool
	SkipLocal bool
	SkipEnv   bool
}

func (o LoadOptions) files() []string {
	var files []string
	if !o.SkipUser {
		user := o.UserFile
		if user == "" {
			user = paths.ConfigFilePath()
		}
		files = append(files, user)
	}
	if !o.SkipLocal {
		dir := o.LocalDir
		if dir == "" {
			dir = "."
		}
		files = append(files, filepath.Join(dir, paths.LocalConfigFile))
	}
	return files
}

// envKey maps FILECONV_JSON_SORT_KEYS to json.sort_keys and
// FILECONV_TARGET_FORMAT to target_format.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// LoadConfiguration loads every source with default locations.
func LoadConfiguration() (*Config, error) {
	return Load(LoadOptions{})
}

// Load reads the sources selected by opts and decodes them into a Config.
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User and project files, when present
	for _, path := range opts.files() {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
				WithDetail(errors.DetailPath, path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail(errors.DetailPath, path)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
