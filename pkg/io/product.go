package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/geniass/price-tracker/pkg/tracker"
)

const DefaultDataFile = "tracked_products.json"

// FileStorage keeps every tracked product in a single JSON document, keyed by
// product name.
type FileStorage struct {
	Path string
}

func NewFileStorage(path string) FileStorage {
	if path == "" {
		path = DefaultDataFile
	}
	return FileStorage{Path: path}
}

// Load reads the document. A missing file is an empty store; an undecodable
// one is reported with an error wrapping tracker.ErrCorruptStore.
func (s FileStorage) Load() (map[string]tracker.Product, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]tracker.Product{}, nil
	} else if err != nil {
		return nil, err
	}

	ps := map[string]tracker.Product{}
	if err := json.Unmarshal(b, &ps); err != nil {
		return map[string]tracker.Product{}, fmt.Errorf("%s: %w: %v", s.Path, tracker.ErrCorruptStore, err)
	}

	for name, p := range ps {
		if p.Prices == nil {
			p.Prices = []tracker.Observation{}
			ps[name] = p
		}
	}
	return ps, nil
}

// Save rewrites the whole document. It writes a temporary file next to the
// target and renames it over the old one.
func (s FileStorage) Save(ps map[string]tracker.Product) error {
	b, err := Encode(ps)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, os.ModeDir|0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(f.Name(), s.Path)
}

// Encode renders the document with two-space indentation, leaving HTML
// characters and non-ASCII text as they are.
func Encode(ps map[string]tracker.Product) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ps); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
