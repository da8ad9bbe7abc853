package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the global configuration directory (~/.daywing).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".daywing"), nil
}

// GetDataDir returns the directory holding the database.
// Resolution order (first match wins):
// 1. Explicit config via "data.dir" (flag/config file/env)
// 2. Local project directory: .daywing (if it exists)
// 3. XDG_DATA_HOME/daywing (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.daywing
func GetDataDir(v *viper.Viper) string {
	if path := v.GetString("data.dir"); path != "" {
		return path
	}

	if info, err := os.Stat(LocalDir); err == nil && info.IsDir() {
		return LocalDir
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "daywing")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./" + LocalDir
	}
	return dir
}

// LockFilePath returns the housekeeping lock path. A relative lockFile is
// resolved against dataDir.
func LockFilePath(dataDir, lockFile string) string {
	if lockFile == "" {
		lockFile = DefaultLockFile
	}
	if filepath.IsAbs(lockFile) {
		return lockFile
	}
	return filepath.Join(dataDir, lockFile)
}
