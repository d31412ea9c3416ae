// Package utils holds small path helpers shared by the specfile reader and
// the CLI, kept separate to avoid import cycles between them.
package utils

import (
	"os"
	"path/filepath"

	"github.com/cosy-synth/cosy/internal/config"
)

// ResolveSpecPath resolves a path argument relative to a base directory if
// it is relative, and expands a bare directory to its conventional
// cosy.yaml file.
func ResolveSpecPath(baseDir, path string) (string, error) {
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		path = filepath.Join(path, config.DefaultSpecFile)
	}
	return path, nil
}

// BaseDir returns the directory a spec file lives in, for resolving
// relative includes within it.
func BaseDir(path string) string {
	return filepath.Dir(path)
}
