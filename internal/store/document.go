package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/theirongolddev/ratio/internal/model"
)

// Document is a ledger stored as a single JSON file.
type Document struct {
	path string
}

// OpenDocument returns a store backed by the JSON file at path. The file is
// not created until the first Save.
func OpenDocument(path string) (*Document, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}
	return &Document{path: path}, nil
}

// Path returns the backing file path.
func (d *Document) Path() string { return d.path }

// Load reads the document. A missing or empty file yields model.DefaultLedger.
func (d *Document) Load(ctx context.Context) (model.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return model.Ledger{}, err
	}
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.DefaultLedger(), nil
	}
	if err != nil {
		return model.Ledger{}, fmt.Errorf("reading ledger: %w", err)
	}
	l, err := model.DecodeLedger(data)
	if err != nil {
		return model.Ledger{}, fmt.Errorf("parsing %s: %w", d.path, err)
	}
	return l, nil
}

// Save writes the document atomically: a temp file in the same directory is
// renamed over the old one.
func (d *Document) Save(ctx context.Context, l model.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteLedger(tmp, l); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), d.path)
}

// Close is a no-op; the document holds no open handles.
func (d *Document) Close() error { return nil }

// WriteLedger encodes l as an indented ledger document.
func WriteLedger(w io.Writer, l model.Ledger) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	return nil
}

// ReadLedger decodes a ledger document, coercing malformed values.
func ReadLedger(r io.Reader) (model.Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Ledger{}, err
	}
	return model.DecodeLedger(data)
}
