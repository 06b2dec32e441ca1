package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigName is the project configuration file looked up by every
// command, and the file `may version --bump` rewrites.
const ProjectConfigName = ".maylang.yml"

// FindProjectConfig walks up from start (default: working directory)
// looking for the project config file. Returns the path of the nearest
// one, or an error when none exists up to the filesystem root.
func FindProjectConfig(start string) (string, error) {
	dir := start
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found above %s", ProjectConfigName, start)
		}
		dir = parent
	}
}
