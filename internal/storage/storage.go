// Package storage persists application documents as single JSON files.
// Writes go through a temp file in the same directory followed by a
// rename, so readers only ever observe a complete document.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Fault reports a failed read or write of a persisted document.
type Fault struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s document %s: %v", f.Op, f.Path, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// IsNotExist reports whether err is a read fault caused by a missing
// document. Stores use this to fall back to defaults without logging
// a fault on first run.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// LoadDocument reads the JSON document at path into v.
func LoadDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Fault{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &Fault{Op: "read", Path: path, Err: err}
	}
	return nil
}

// SaveDocument serializes v and atomically replaces the document at path.
// The document is either fully the old or fully the new content even if
// the process dies mid-write.
func SaveDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &Fault{Op: "write", Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Fault{Op: "write", Path: path, Err: err}
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &Fault{Op: "write", Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return &Fault{Op: "write", Path: path, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return &Fault{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &Fault{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &Fault{Op: "write", Path: path, Err: err}
	}
	return nil
}
