package platform

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/goccy/go-json"
)

// FileKV is a KV persisted to a single JSON file, giving headless
// processes a local store with the same synchronous contract as the
// in-memory one. Every write rewrites the file; an unreadable or
// corrupted file degrades to an empty store.
type FileKV struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFileKV loads (or lazily creates) the store at path.
func OpenFileKV(path string) (*FileKV, error) {
	kv := &FileKV{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		// A corrupted file is treated as empty rather than fatal; the
		// next write replaces it.
		_ = json.Unmarshal(raw, &kv.data)
	}
	return kv, nil
}

// Get returns the value for key and whether it was present.
func (f *FileKV) Get(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	f.mu.Lock()
	v, ok := f.data[key]
	f.mu.Unlock()
	return v, ok
}

// Set stores value under key and persists the file.
func (f *FileKV) Set(key, value string) error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flushLocked()
}

// Delete removes key and persists the file.
func (f *FileKV) Delete(key string) error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return f.flushLocked()
}

func (f *FileKV) flushLocked() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o644)
}
