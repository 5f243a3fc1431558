package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirDownloader_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	d := DirDownloader{Dir: dir}

	path, err := d.Save("tasks.json", strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "tasks.json") {
		t.Errorf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestDirDownloader_Overwrites(t *testing.T) {
	d := DirDownloader{Dir: t.TempDir()}
	if _, err := d.Save("tasks.csv", strings.NewReader("old")); err != nil {
		t.Fatal(err)
	}
	path, err := d.Save("tasks.csv", strings.NewReader("new"))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("expected replaced file, got %q", data)
	}

	entries, _ := os.ReadDir(d.Dir)
	if len(entries) != 1 {
		t.Errorf("expected no temp files left, got %d entries", len(entries))
	}
}

func TestDirDownloader_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := DirDownloader{Dir: dir}.Save("../../etc/tasks.md", strings.NewReader("# Tasks"))
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "tasks.md") {
		t.Errorf("expected file inside download dir, got %q", path)
	}
}
