// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package jsonfile reads and writes JSON documents on a testable.FileSystem
// and resolves real paths.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/davetashner/wsinfo/internal/testable"
)

// Indent is the indentation used when encoding objects.
const Indent = "    "

// ErrNotFound is returned by Read when the file does not exist.
var ErrNotFound = errors.New("json file not found")

// SyntaxError reports a file whose content is not a JSON object.
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid JSON: %v", e.Err)
	}
	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Decode parses data as a single JSON object. Top-level arrays, scalars and
// null are rejected so callers always get a usable record.
func Decode(data []byte) (map[string]any, error) {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	if doc == nil {
		return nil, &SyntaxError{Err: errors.New("document is null")}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &SyntaxError{Err: errors.New("trailing data after object")}
	}
	return doc, nil
}

// Read loads and decodes the JSON object at path. A missing file wraps
// ErrNotFound; malformed content returns a *SyntaxError.
func Read(fsys testable.FileSystem, path string) (map[string]any, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// ReadOrEmpty is Read with every failure collapsed into an empty record.
func ReadOrEmpty(fsys testable.FileSystem, path string) map[string]any {
	doc, err := Read(fsys, path)
	if err != nil {
		return map[string]any{}
	}
	return doc
}

// Write encodes v to w. Strings and byte slices are written verbatim; any
// other value is encoded as indented JSON followed by a newline.
func Write(w io.Writer, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns the bytes Write would produce for v.
func Marshal(v any) ([]byte, error) {
	switch raw := v.(type) {
	case string:
		return []byte(raw), nil
	case []byte:
		return raw, nil
	case nil:
		return nil, nil
	}
	data, err := json.MarshalIndent(v, "", Indent)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile encodes v like Write and stores it at path with perm.
func WriteFile(fsys testable.FileSystem, path string, v any, perm os.FileMode) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
