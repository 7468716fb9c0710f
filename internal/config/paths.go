package config

import (
	"os"
	"path/filepath"
)

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// ResolvePath makes a relative path absolute. A path that exists relative to the
// working directory wins; otherwise it is taken relative to the executable so a
// distributed binary finds the workbook shipped next to it.
func ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if _, err := os.Stat(p); err == nil {
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	if dir, err := ExecutableDir(); err == nil {
		candidate := filepath.Join(dir, p)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
