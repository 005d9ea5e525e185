package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"patchenv/internal/version"

	"github.com/adrg/xdg"
)

// ConfigFileName is the name of the optional TOML configuration file.
const ConfigFileName = "patch-env.toml"

// ConfigHomeOverride allows overriding the config home for tests.
var ConfigHomeOverride string

// GetConfigDir returns the directory holding the configuration file.
// It is a subdirectory named after the application (e.g., ~/.config/patch-env).
func GetConfigDir() string {
	appName := strings.ToLower(version.ApplicationName)
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetConfigFilePath returns the absolute path to patch-env.toml.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// ResolveFile returns the absolute, cleaned form of path relative to the
// current working directory.
func ResolveFile(path string) (string, error) {
	return filepath.Abs(path)
}
