package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"tools.zach/dev/colorset/internal/atomicfile"
	"tools.zach/dev/colorset/internal/paths"
)

// FS is the filesystem capability the [Writer] needs.
type FS interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// WriteError is returned when the colorset directory or descriptor file
// cannot be written.
type WriteError struct {
	// Op is "mkdir" or "write".
	Op string
	// Path is the directory or file involved.
	Path string
	// Err is the underlying filesystem error.
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Encode serializes d as 2-space indented JSON with a trailing newline. Key
// order follows the struct field order, so output is stable across runs.
func Encode(d *Descriptor) ([]byte, error) {
	if d.Colors == nil {
		d = &Descriptor{Colors: []Variant{}, Info: d.Info}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// Writer persists descriptors. The zero value writes through [atomicfile.FS].
type Writer struct {
	FS FS
}

// Write creates dir and any missing ancestors, then replaces
// dir/Contents.json with the encoded descriptor. Sibling files in dir are
// left untouched and the previous descriptor is never read.
func (w *Writer) Write(dir string, d *Descriptor) error {
	var fsys FS = atomicfile.FS{}
	if w != nil && w.FS != nil {
		fsys = w.FS
	}

	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Op: "mkdir", Path: dir, Err: err}
	}
	path := paths.Contents(dir)
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Op: "write", Path: path, Err: err}
	}
	return nil
}
