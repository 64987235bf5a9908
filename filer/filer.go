// Package filer is an interface used by appendorr for file system procedures.
// You may override this to gain more control of operations in your app, or to
// inject faults in tests.
package filer

//go:generate mockgen -destination=../mocks/filer.go -package=mocks golift.io/appendorr/filer Filer
//go:generate mockgen -destination=../mocks/fileinfo.go -package=mocks os FileInfo

import (
	"os"
)

// Filer is used to override file-managing procedures.
type Filer interface {
	Remove(fileName string) error
	Rename(fileName, newPath string) error
	ReadDir(dirPath string) ([]os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(fileName string) (os.FileInfo, error)
}

// Default returns a Filer interface that works, using default procedures.
func Default() Filer {
	return &File{}
}

// File can be embedded in a custom type to provide the missing methods for the Filer interface.
type File struct{}

// Remove provides os.Remove.
func (f *File) Remove(fileName string) error {
	return os.Remove(fileName)
}

// Rename provides os.Rename.
func (f *File) Rename(fileName, newPath string) error {
	return os.Rename(fileName, newPath)
}

// ReadDir provides os.ReadDir, adapted to return os.FileInfo.
func (f *File) ReadDir(dirPath string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue // deleted between list and stat.
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// MkdirAll provides os.MkdirAll.
func (f *File) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile provides os.OpenFile.
func (f *File) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Stat provides os.Stat.
func (f *File) Stat(fileName string) (os.FileInfo, error) {
	return os.Stat(fileName)
}
