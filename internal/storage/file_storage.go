// internal/storage/file_storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage provides file persistence with per-path serialization and
// atomic writes. Readers always see the bytes of a complete write, never a
// partially flushed file.
type FileStorage struct {
	fileLocks sync.Map // path -> *sync.RWMutex
}

// NewFileStorage creates a file storage service
func NewFileStorage() *FileStorage {
	return &FileStorage{}
}

func (fs *FileStorage) getFileLock(fullPath string) *sync.RWMutex {
	value, _ := fs.fileLocks.LoadOrStore(fullPath, &sync.RWMutex{})
	return value.(*sync.RWMutex)
}

// EnsureParentDir creates the directory containing path. A directory that
// already exists is success.
func (fs *FileStorage) EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// SaveTextFile writes content to path atomically: the bytes go to a
// temporary file first and are renamed into place.
func (fs *FileStorage) SaveTextFile(path string, content []byte) error {
	lock := fs.getFileLock(path)
	lock.Lock()
	defer lock.Unlock()

	if err := fs.EnsureParentDir(path); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		// Best effort: do not leave the temp file behind
		os.Remove(tempPath)
		return fmt.Errorf("replacing file: %w", err)
	}

	return nil
}

// SaveJSONFile serializes data as pretty-printed JSON (2-space indent, the
// on-disk contract) and writes it atomically
func (fs *FileStorage) SaveJSONFile(path string, data interface{}) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing JSON: %w", err)
	}
	return fs.SaveTextFile(path, append(content, '\n'))
}

// LoadTextFile reads the raw bytes at path
func (fs *FileStorage) LoadTextFile(path string) ([]byte, error) {
	lock := fs.getFileLock(path)
	lock.RLock()
	defer lock.RUnlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return content, nil
}

// FileExists checks whether a file exists at path
func (fs *FileStorage) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
