package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the cache file created in the working directory.
const DefaultFileName = ".siftcache"

// ResolveLocation maps the --cache-location value to a cache file path.
// A directory (existing, or spelled with a trailing separator) gets a file
// named after a hash of cwd so that several projects can share it.
func ResolveLocation(location, cwd string) (string, error) {
	if location == "" {
		return filepath.Join(cwd, DefaultFileName), nil
	}
	isDir := strings.HasSuffix(location, string(filepath.Separator)) || strings.HasSuffix(location, "/")
	abs := location
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, location)
	}
	if !isDir {
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			isDir = true
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	if isDir {
		sum := sha256.Sum256([]byte(cwd))
		return filepath.Join(abs, DefaultFileName+"_"+hex.EncodeToString(sum[:])[:12]), nil
	}
	return abs, nil
}

// Delete removes the cache file; a missing file is not an error.
func Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
