// Package filestore keeps uploaded bytes on local disk under generated names.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Read when the stored file is absent.
var ErrNotFound = errors.New("stored file not found")

// ErrInvalidName rejects storage names that would escape the upload directory.
var ErrInvalidName = errors.New("invalid storage name")

const tmpSuffix = ".tmp"

type FileStore struct {
	dir string
}

type SaveResult struct {
	// StorageName is a 32 character hex name relative to the store directory.
	StorageName string
	FullPath    string
	Size        int64
}

// Entry is a stored file seen by List.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// New creates dir when it does not exist.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Save streams reader to a temp file and renames it into place once fully written.
func (fs *FileStore) Save(reader io.Reader) (*SaveResult, error) {
	name := generateStorageName()
	fullPath := filepath.Join(fs.dir, name)
	tmpPath := fullPath + tmpSuffix

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write upload: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("fsync upload: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("close upload: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("rename upload: %w", err)
	}

	return &SaveResult{
		StorageName: name,
		FullPath:    fullPath,
		Size:        size,
	}, nil
}

// Read returns the whole stored file, or ErrNotFound.
func (fs *FileStore) Read(name string) ([]byte, error) {
	fullPath, err := fs.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Delete removes the stored file. An absent file is not an error.
func (fs *FileStore) Delete(name string) error {
	fullPath, err := fs.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

func (fs *FileStore) Exists(name string) bool {
	fullPath, err := fs.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(fullPath)
	return err == nil
}

// List returns the regular files in the store directory, temp files included.
func (fs *FileStore) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", fs.dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

func (fs *FileStore) Dir() string {
	return fs.dir
}

// IsTemp reports whether name is an in-progress Save.
func IsTemp(name string) bool {
	return strings.HasSuffix(name, tmpSuffix)
}

func (fs *FileStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	return filepath.Join(fs.dir, name), nil
}

func generateStorageName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
