package config

import (
	"os"
	"path/filepath"
)

// GetHome returns CORETEST_HOME or ~/.coretest default
func GetHome() string {
	home := os.Getenv("CORETEST_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".coretest"
		}
		return filepath.Join(homeDir, ".coretest")
	}
	return ExpandPath(home)
}

// GetDBPath returns $CORETEST_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "state.db")
}

// GetLockPath returns $CORETEST_HOME/reset.lock
func GetLockPath() string {
	return filepath.Join(GetHome(), "reset.lock")
}

// GetSettingsPath returns $CORETEST_HOME/settings.yaml
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.yaml")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

// resolveUnder joins path onto base unless path is already absolute
func resolveUnder(base, path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
