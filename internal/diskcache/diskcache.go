// Package diskcache implements the filesystem side of the response cache:
// directories as capabilities and files whose mtime is the freshness signal.
package diskcache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Ext is the file extension for cache entries (serialized tables).
const Ext = ".csv"

// Dir is a cache directory capability. The zero value is disabled: reads
// always miss and writes are silently ignored. Whether a directory is
// usable is decided once, at registration, not re-checked per access.
type Dir struct {
	path string
	mode os.FileMode
}

// Ensure returns an enabled Dir for path, creating the directory if needed.
// If the directory cannot be created or is not writable, it returns a
// disabled Dir; callers treat that as "caching unavailable here", never as
// an error.
func Ensure(path string, mode os.FileMode) Dir {
	if path == "" {
		return Dir{}
	}
	if err := os.MkdirAll(path, mode); err != nil {
		logrus.Debugf("cache directory %s unavailable: %v", path, err)
		return Dir{}
	}
	if !writable(path) {
		logrus.Debugf("cache directory %s is not writable, caching disabled", path)
		return Dir{}
	}
	return Dir{path: path, mode: mode}
}

// writable probes the directory by creating and removing a scratch file.
func writable(path string) bool {
	f, err := os.CreateTemp(path, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// Enabled reports whether this directory can serve cache entries.
func (d Dir) Enabled() bool {
	return d.path != ""
}

// Path returns the directory path, or "" when disabled.
func (d Dir) Path() string {
	return d.path
}

// Child derives the capability for a subdirectory, again best-effort.
func (d Dir) Child(name string) Dir {
	if !d.Enabled() {
		return Dir{}
	}
	return Ensure(filepath.Join(d.path, name), d.mode)
}

// FilePath returns the path of the entry named id, or "" when disabled.
func (d Dir) FilePath(id string) string {
	if !d.Enabled() {
		return ""
	}
	return filepath.Join(d.path, id+Ext)
}

// ReadFresh returns the entry named id if it exists and its mtime is
// younger than ttl. A ttl of zero (or less) never matches, so such entries
// are always refetched. Expired files are left in place; they are simply
// overwritten by the next successful fetch.
func (d Dir) ReadFresh(id string, ttl time.Duration) ([]byte, bool) {
	if !d.Enabled() || ttl <= 0 {
		return nil, false
	}
	path := d.FilePath(id)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) >= ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write stores the entry named id, overwriting any previous content.
// Best-effort: failures are logged and swallowed, a write that does not
// land only costs the next call a refetch.
func (d Dir) Write(id string, data []byte) {
	if !d.Enabled() {
		return
	}
	path := d.FilePath(id)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logrus.Debugf("failed to write cache entry %s: %v", path, err)
		return
	}
	logrus.Debugf("cached response: %s", path)
}
