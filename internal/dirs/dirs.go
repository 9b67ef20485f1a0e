// Package dirs resolves the per-user directories ytclip reads and writes.
package dirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "ytclip"

// TempDirEnv overrides the base for per-run work dirs.
const TempDirEnv = "YTCLIP_TEMP_DIR"

// AppName returns the directory name used under every base.
func AppName() string {
	return appName
}

// ConfigDir returns the configuration directory:
// $XDG_CONFIG_HOME/ytclip or ~/.config/ytclip on linux,
// ~/Library/Application Support/ytclip on macOS, %AppData%/ytclip elsewhere.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config", []string{"Library", "Application Support"}, os.UserConfigDir)
}

// CacheDir returns the cache directory:
// $XDG_CACHE_HOME/ytclip or ~/.cache/ytclip on linux,
// ~/Library/Caches/ytclip on macOS, %LocalAppData%/ytclip elsewhere.
func CacheDir() (string, error) {
	return appDir("XDG_CACHE_HOME", ".cache", []string{"Library", "Caches"}, os.UserCacheDir)
}

func appDir(xdgVar, linuxHomeRel string, darwinHomeRel []string, fallback func() (string, error)) (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, linuxHomeRel, appName), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(append(append([]string{home}, darwinHomeRel...), appName)...), nil
	default:
		base, err := fallback()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, appName), nil
	}
}

// TempBaseDir returns where per-run work dirs are created: $YTCLIP_TEMP_DIR
// when set, else <cache dir>/temp.
func TempBaseDir() (string, error) {
	if v := os.Getenv(TempDirEnv); v != "" {
		return v, nil
	}
	c, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(c, "temp"), nil
}

// Ensure creates the directory if it doesn't exist.
func Ensure(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}
