package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"patchenv/internal/paths"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Patch PatchConfig `toml:"patch"`
	Log   LogConfig   `toml:"log"`

	// Path of the file the settings were read from, empty when defaults are used
	Source string `toml:"-"`
}

// PatchConfig holds defaults for the patch operation. Command line flags win.
type PatchConfig struct {
	Backup bool `toml:"backup"`
	Diff   bool `toml:"diff"`
	Check  bool `toml:"check"`
}

// LogConfig holds logging related settings.
type LogConfig struct {
	Level string `toml:"level"` // trace, debug, info, notice, warn, error
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Log: LogConfig{
			Level: "notice",
		},
	}
}

// ExpandVariables expands the variables supported in config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		}
		return ""
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration file at path, or the default
// location when path is empty. A missing default file is not an error.
// On error the returned config still holds usable defaults.
func LoadAppConfig(path string) (AppConfig, error) {
	conf := Default()

	explicit := path != ""
	if !explicit {
		path = paths.GetConfigFilePath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return conf, nil
		}
		return conf, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	conf.Source = path
	conf.Log.Level = strings.ToLower(strings.TrimSpace(conf.Log.Level))
	conf.Log.File = ExpandVariables(conf.Log.File)
	return conf, nil
}
