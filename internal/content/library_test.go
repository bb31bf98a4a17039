package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, root, rel, body string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDocumentsKindsAndOrder(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "threads/go-errors.md", "# Go errors\n")
	writeDoc(t, root, "notes/scratch.md", "scratch\n")
	writeDoc(t, root, "podcasts/ep-12.md", "# Ep 12\n")
	writeDoc(t, root, "loose.md", "loose\n")
	writeDoc(t, root, ".hidden/secret.md", "nope\n")
	writeDoc(t, root, "threads/readme.txt", "not markdown\n")

	lib := NewLibrary(root)
	docs, err := lib.Documents()
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		path string
		kind Kind
	}{
		{"loose.md", KindNote},
		{"notes/scratch.md", KindNote},
		{"podcasts/ep-12.md", KindPodcast},
		{"threads/go-errors.md", KindThread},
	}
	if len(docs) != len(want) {
		t.Fatalf("got %d documents, want %d: %+v", len(docs), len(want), docs)
	}
	for i, w := range want {
		if docs[i].Path != w.path || docs[i].Kind != w.kind {
			t.Errorf("docs[%d] = %s/%s, want %s/%s", i, docs[i].Path, docs[i].Kind, w.path, w.kind)
		}
	}
}

func TestCreateThread(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	rel, err := lib.CreateThread("Generics in Go")
	if err != nil {
		t.Fatal(err)
	}
	if rel != filepath.Join("threads", "generics-in-go.md") {
		t.Fatalf("unexpected path %q", rel)
	}

	data, err := lib.Read(rel)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("thread file is empty")
	}

	// Creating the same thread twice must refuse to overwrite.
	if _, err := lib.CreateThread("Generics in Go"); err == nil {
		t.Fatal("expected error on duplicate thread")
	}
}

func TestCreateThreadEmptySlug(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	if _, err := lib.CreateThread("!!!"); err == nil {
		t.Fatal("expected error for unsluggable title")
	}
}

func TestCreateNote(t *testing.T) {
	lib := NewLibrary(t.TempDir())
	rel, err := lib.CreateNote()
	if err != nil {
		t.Fatal(err)
	}
	docs, err := lib.Documents()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Path != rel || docs[0].Kind != KindNote {
		t.Fatalf("unexpected documents after CreateNote: %+v", docs)
	}
	if h := docs[0].Handle(); h.Kind != KindNote || h.Ref != rel {
		t.Fatalf("unexpected handle %+v", h)
	}
}
