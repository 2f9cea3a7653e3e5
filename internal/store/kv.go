// Package store persists per-bank progress in two independently
// written slots, a primary and a backup, so a crash or eviction
// mid-write corrupts at most one copy.
package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Slot keys live under a versioned namespace so a future layout change
// can coexist with old data. Enumerating keys under the prefix,
// excluding backup-suffixed ones, yields the banks with saved
// progress.
const (
	keyPrefix    = "shuati.progress.v1."
	backupSuffix = ".bak"
)

// KV is one slot backend. Implementations: a directory of files
// (default) and an embedded SQLite database.
type KV interface {
	// Get returns the value at key, with ok=false when absent.
	Get(key string) (value string, ok bool, err error)

	// Set writes key to value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys lists all keys starting with prefix.
	Keys(prefix string) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// validBankID reports whether id is safe to embed in a slot key. Ids
// normally come from the bank manifest, but imported payloads supply
// them too, so anything that could escape the key namespace (path
// separators, dot segments) or collide with a backup slot is refused.
func validBankID(id string) bool {
	if id == "" || strings.Contains(id, "..") {
		return false
	}
	if strings.ContainsAny(id, `/\`) {
		return false
	}
	return !strings.HasSuffix(id, backupSuffix)
}

func primaryKey(bankID string) string {
	return keyPrefix + bankID
}

func backupKey(bankID string) string {
	return keyPrefix + bankID + backupSuffix
}

// bankIDFromKey inverts primaryKey; backup keys return ok=false.
func bankIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, keyPrefix) || strings.HasSuffix(key, backupSuffix) {
		return "", false
	}
	return strings.TrimPrefix(key, keyPrefix), true
}

// DefaultDataDir resolves the data directory in priority order:
// SHUATI_DATA_DIR, then $XDG_DATA_HOME/shuati, then
// ~/.local/share/shuati.
func DefaultDataDir() (string, error) {
	if p := os.Getenv("SHUATI_DATA_DIR"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "shuati"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
