package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fileKV stores each slot as one file in a directory. Keys are used
// as filenames directly; Store refuses bank ids that could escape the
// directory before they reach this layer.
type fileKV struct {
	dir string
}

// OpenFile creates a file-backed slot store rooted at dir.
func OpenFile(dir string) (KV, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileKV{dir: dir}, nil
}

func (f *fileKV) path(key string) string {
	return filepath.Join(f.dir, key)
}

func (f *fileKV) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

func (f *fileKV) Set(key, value string) error {
	return os.WriteFile(f.path(key), []byte(value), 0o644)
}

func (f *fileKV) Delete(key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *fileKV) Keys(prefix string) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

func (f *fileKV) Close() error {
	return nil
}
