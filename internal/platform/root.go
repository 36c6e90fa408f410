package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SystemDir is the directory that marks a project-local store.
const SystemDir = ".notepad"

// ErrRootNotFound is returned by FindRoot when no ancestor holds a store.
var ErrRootNotFound = errors.New("root not found")

// FindRoot looks upwards from startDir for a directory containing SystemDir
// and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, SystemDir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrRootNotFound
}

// DefaultStorePath picks the store used when no path is given: the nearest
// project-local store above the working directory, else one in the home directory.
func DefaultStorePath() (string, error) {
	if wd, err := os.Getwd(); err == nil {
		if root, err := FindRoot(wd); err == nil {
			return filepath.Join(root, SystemDir), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, SystemDir), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ensureDir creates dir, or only checks it when mustExist is set.
func ensureDir(dir string, mustExist bool) error {
	if mustExist {
		if !isDir(dir) {
			return fmt.Errorf("store path does not exist: %s", dir)
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}
