package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/flickernaut/pkg/adapters/fs"
)

// AppDirName is the directory created under the user config dir.
const AppDirName = "flickernaut"

// DefaultSettingsPath returns $XDG_CONFIG_HOME/flickernaut/settings.yaml
// (or the platform equivalent).
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, AppDirName, fs.DefaultFileName), nil
}

// ResolveSettingsPath turns user input into an absolute settings file path.
// An empty path selects the default location, a leading "~" expands to the
// home directory and an existing directory gets the default file name.
func ResolveSettingsPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DefaultSettingsPath()
	}

	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return filepath.Join(abs, fs.DefaultFileName), nil
	}
	return abs, nil
}
