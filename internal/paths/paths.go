// Package paths resolves the tool's well-known locations respecting
// environment overrides.
package paths

import (
	"os"
	"path/filepath"
)

// Paths holds the base directories the tool uses.
type Paths struct {
	ConfigDir string
	DataDir   string
	StateDir  string
}

// GetPaths returns all base paths respecting environment variables.
func GetPaths() Paths {
	return Paths{
		ConfigDir: getDir("FAIRE2NCBI_CONFIG_HOME", "XDG_CONFIG_HOME", ".config", "faire2ncbi"),
		DataDir:   getDir("FAIRE2NCBI_DATA_HOME", "XDG_DATA_HOME", ".local/share", "faire2ncbi"),
		StateDir:  getDir("FAIRE2NCBI_STATE_HOME", "XDG_STATE_HOME", ".local/state", "faire2ncbi"),
	}
}

func getDir(toolEnv, xdgEnv, defaultBase, appName string) string {
	// 1. Check tool-specific env
	if dir := os.Getenv(toolEnv); dir != "" {
		return dir
	}

	// 2. Check XDG env
	if xdgBase := os.Getenv(xdgEnv); xdgBase != "" {
		return filepath.Join(xdgBase, appName)
	}

	// 3. Use default
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultBase, appName)
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path[1:])
}
