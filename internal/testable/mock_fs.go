package testable

import (
	"io/fs"
	"os"
)

// MockFileSystem is a test double for FileSystem. Each method has a
// corresponding function field. When the field is non-nil, the mock calls it;
// otherwise, it falls through to OsFileSystem (real OS behavior).
//
// Tests override only the methods they care about, typically to inject an
// error, while a t.TempDir fixture supplies everything else.
type MockFileSystem struct {
	GetwdFn        func() (string, error)
	AbsFn          func(path string) (string, error)
	EvalSymlinksFn func(path string) (string, error)
	StatFn         func(name string) (os.FileInfo, error)
	ReadFileFn     func(name string) ([]byte, error)
	WriteFileFn    func(name string, data []byte, perm os.FileMode) error
	MkdirAllFn     func(path string, perm os.FileMode) error
	DirFSFn        func(dir string) fs.FS
}

var real OsFileSystem

// Getwd calls GetwdFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Getwd() (string, error) {
	if m.GetwdFn != nil {
		return m.GetwdFn()
	}
	return real.Getwd()
}

// Abs calls AbsFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Abs(path string) (string, error) {
	if m.AbsFn != nil {
		return m.AbsFn(path)
	}
	return real.Abs(path)
}

// EvalSymlinks calls EvalSymlinksFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) EvalSymlinks(path string) (string, error) {
	if m.EvalSymlinksFn != nil {
		return m.EvalSymlinksFn(path)
	}
	return real.EvalSymlinks(path)
}

// Stat calls StatFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	return real.Stat(name)
}

// ReadFile calls ReadFileFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(name)
	}
	return real.ReadFile(name)
}

// WriteFile calls WriteFileFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.WriteFileFn != nil {
		return m.WriteFileFn(name, data, perm)
	}
	return real.WriteFile(name, data, perm)
}

// MkdirAll calls MkdirAllFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return real.MkdirAll(path, perm)
}

// DirFS calls DirFSFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) DirFS(dir string) fs.FS {
	if m.DirFSFn != nil {
		return m.DirFSFn(dir)
	}
	return real.DirFS(dir)
}

// Compile-time interface check.
var _ FileSystem = (*MockFileSystem)(nil)
