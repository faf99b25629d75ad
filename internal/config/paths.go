package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// projectMarkers are directories that indicate project root.
var projectMarkers = []string{ProjectConfigDir, ".git"}

// ResolvePaths converts the relative file paths in cfg (paths and catalog
// dirs) to absolute paths under basePath. If basePath is empty, the current
// working directory is used.
func (c *Config) ResolvePaths(basePath string) error {
	if basePath == "" {
		var err error
		basePath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(basePath, p)
	}

	c.Paths = PathsConfig{
		Profile:  resolve(c.Paths.Profile),
		Activity: resolve(c.Paths.Activity),
		DebugLog: resolve(c.Paths.DebugLog),
	}
	c.Player.CompletionMessageFile = resolve(c.Player.CompletionMessageFile)

	dirs := make([]string, len(c.Catalog.Dirs))
	for i, dir := range c.Catalog.Dirs {
		dirs[i] = resolve(dir)
	}
	c.Catalog.Dirs = dirs
	return nil
}

// FindProjectRoot walks up the directory tree from startDir looking for
// project markers (.iqfit or .git). Returns the directory containing the
// marker, or startDir if no marker is found.
func FindProjectRoot(startDir string) string {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "."
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return startDir
	}

	dir := absDir
	for {
		for _, marker := range projectMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return absDir
		}
		dir = parent
	}
}
