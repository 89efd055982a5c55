// Package configpaths locates sheetgen configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "sheetgen"

// Base names looked up in every candidate directory, in priority order.
var baseNames = []string{"sheetgen", "config", "generate"}

// DefaultConfigDir returns the per-user configuration directory for sheetgen.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, appName), nil
		}
		return "", errors.New("AppData not set")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", appName), nil
	}
	return "", errors.New("HOME not set")
}

// Ext maps a format name to its file extension. Unknown formats are JSON.
func Ext(format string) string {
	switch format {
	case "yaml", "yml":
		return ".yaml"
	case "toml":
		return ".toml"
	}
	return ".json"
}

// DefaultNamedConfigPath returns the per-user path of a config file named
// baseName (e.g. "generate") in the given format.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, baseName+Ext(format)), nil
}

// EnsureDir creates the parent directory of filePath.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// Candidates holds config file paths per loader, highest priority first.
type Candidates struct {
	JSON, YAML, TOML []string
}

func (c *Candidates) add(p string) {
	switch filepath.Ext(p) {
	case ".yaml", ".yml":
		c.YAML = append(c.YAML, p)
	case ".toml":
		c.TOML = append(c.TOML, p)
	default:
		c.JSON = append(c.JSON, p)
	}
}

func (c *Candidates) addDir(dir string) {
	for _, base := range baseNames {
		for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
			c.add(filepath.Join(dir, base+ext))
		}
	}
}

// ConfigCandidatePaths builds candidate paths for config files per format.
// userPath comes first and is routed by extension, followed by the working
// directory, the user config directory and, on unix, /etc/sheetgen.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	var c Candidates
	if userPath != "" {
		c.add(userPath)
	}
	if wd, err := os.Getwd(); err == nil {
		c.addDir(wd)
	}
	if dir, err := DefaultConfigDir(); err == nil {
		c.addDir(dir)
	}
	if runtime.GOOS != "windows" {
		c.addDir(filepath.Join("/etc", appName))
	}
	return c.JSON, c.YAML, c.TOML
}
