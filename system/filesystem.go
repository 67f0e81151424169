package system

import (
	"io/fs"
	"os"
	"path/filepath"
)

// VirtualFS is the file system sources are discovered and read from. Paths are passed through
// unchanged, so a VirtualFS backed by the OS accepts relative and absolute paths alike.
type VirtualFS interface {
	fs.FS
	fs.StatFS
	fs.ReadFileFS
	fs.ReadDirFS
}

// WritableVirtualFS is a VirtualFS reports can be written to.
type WritableVirtualFS interface {
	VirtualFS
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// FileSystem is a VirtualFS over the host operating system.
type FileSystem struct{}

var (
	_ VirtualFS         = (*FileSystem)(nil)
	_ WritableVirtualFS = (*FileSystem)(nil)
)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(name) //nolint:gosec
}

func (fs *FileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (fs *FileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec
}

func (fs *FileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// WriteFile writes data to name, creating missing parent directories.
func (fs *FileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil { //nolint:gosec
		return err
	}
	return os.WriteFile(name, data, perm)
}

func (fs *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
