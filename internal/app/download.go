package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirDownloader saves downloads into a directory, replacing any file of the same name.
type DirDownloader struct {
	Dir string
}

// Save writes r to Dir/name. Only the base of name is used.
func (d DirDownloader) Save(name string, r io.Reader) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, base)
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
