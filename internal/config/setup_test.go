package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pfassina/loom/internal/content"
)

func TestScaffoldLibraryCreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "library")

	if err := ScaffoldLibrary(root); err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{".loom", content.ThreadsDir, content.NotesDir} {
		fi, err := os.Stat(filepath.Join(root, sub))
		if err != nil {
			t.Errorf("%s: %v", sub, err)
			continue
		}
		if !fi.IsDir() {
			t.Errorf("%s is not a directory", sub)
		}
	}
}

func TestScaffoldLibraryIdempotent(t *testing.T) {
	root := t.TempDir()
	if err := ScaffoldLibrary(root); err != nil {
		t.Fatal(err)
	}
	if err := ScaffoldLibrary(root); err != nil {
		t.Fatal(err)
	}
}

func TestInspectLibraryAcceptsMissingUnderParent(t *testing.T) {
	if err := inspectLibrary(filepath.Join(t.TempDir(), "new-library")); err != nil {
		t.Errorf("missing dir under an existing parent should validate: %v", err)
	}
}

func TestInspectLibraryRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	os.WriteFile(path, []byte("x"), 0644)

	if err := inspectLibrary(path); err == nil {
		t.Error("a plain file should not validate as a library")
	}
}

func TestInspectLibraryRejectsBrokenLayout(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, content.ThreadsDir), []byte("x"), 0644)

	if err := inspectLibrary(root); err == nil {
		t.Error("a file squatting on threads/ should not validate")
	}
}
