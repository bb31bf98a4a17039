package index

import "testing"

func TestOpenMemory(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id, err := db.UpsertDocument("threads/test.md", "thread", "Test", "abc123", 1000, 42)
	if err != nil {
		t.Fatal(err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	err = db.UpdateFTS(id, "Test", "Hello world content", "thread go", "Heading 1")
	if err != nil {
		t.Fatal(err)
	}

	results, err := db.Search("world", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "threads/test.md" {
		t.Errorf("path: got %q, want %q", results[0].Path, "threads/test.md")
	}
	if results[0].Kind != "thread" {
		t.Errorf("kind: got %q, want %q", results[0].Kind, "thread")
	}
}

func TestUpsertDocumentUpdates(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id1, _ := db.UpsertDocument("notes/a.md", "note", "Old", "h1", 1000, 10)
	id2, _ := db.UpsertDocument("notes/a.md", "note", "New", "h2", 2000, 20)
	if id1 != id2 {
		t.Fatalf("upsert should keep the row id, got %d then %d", id1, id2)
	}

	hash, err := db.DocumentHash("notes/a.md")
	if err != nil {
		t.Fatal(err)
	}
	if hash != "h2" {
		t.Errorf("hash = %q, want h2", hash)
	}
}

func TestSearchFiles(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	db.UpsertDocument("podcasts/ep-12.md", "podcast", "Episode 12", "a", 1000, 10)
	db.UpsertDocument("notes/scratch.md", "note", "Scratch", "b", 1000, 10)

	results, err := db.SearchFiles("podcasts", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestFindByBasename(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	db.UpsertDocument("threads/my-thread.md", "thread", "My Thread", "a", 1000, 10)
	db.UpsertDocument("notes/2026-01-01.md", "note", "2026-01-01", "b", 1000, 10)
	db.UpsertDocument("root-note.md", "note", "Root Note", "c", 1000, 10)

	tests := []struct {
		basename string
		want     string
	}{
		{"my-thread.md", "threads/my-thread.md"},
		{"2026-01-01.md", "notes/2026-01-01.md"},
		{"root-note.md", "root-note.md"},
		{"nonexistent.md", ""},
	}

	for _, tt := range tests {
		got, err := db.FindByBasename(tt.basename)
		if err != nil {
			t.Errorf("FindByBasename(%q): %v", tt.basename, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FindByBasename(%q) = %q, want %q", tt.basename, got, tt.want)
		}
	}
}

func TestBacklinks(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id1, _ := db.UpsertDocument("a.md", "note", "Note A", "a", 1000, 10)
	db.UpsertDocument("threads/b.md", "thread", "Note B", "b", 1000, 10)

	// Links store basenames.
	db.InsertLink(id1, "b.md", "", "", 5, 10)

	backlinks, err := db.Backlinks("threads/b.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(backlinks) != 1 {
		t.Fatalf("expected 1 backlink, got %d", len(backlinks))
	}
	if backlinks[0].SourcePath != "a.md" {
		t.Errorf("backlink source: got %q, want %q", backlinks[0].SourcePath, "a.md")
	}
}

func TestEdges(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	idA, _ := db.UpsertDocument("threads/a.md", "thread", "A", "a", 1000, 10)
	idB, _ := db.UpsertDocument("threads/b.md", "thread", "B", "b", 1000, 10)
	db.UpsertDocument("threads/c.md", "thread", "C", "c", 1000, 10)

	db.InsertLink(idA, "b.md", "", "", 1, 0)
	db.InsertLink(idB, "missing.md", "", "", 1, 0)

	// Resolve via the indexer SQL shape: only a→b has a real target.
	if _, err := db.Conn().Exec(`
		UPDATE links SET target_id = (
			SELECT id FROM documents WHERE path = links.target_path OR path LIKE '%/' || links.target_path
		) WHERE target_id IS NULL
	`); err != nil {
		t.Fatal(err)
	}

	edges, err := db.Edges()
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d: %+v", len(edges), edges)
	}
	if edges[0].SourcePath != "threads/a.md" || edges[0].TargetPath != "threads/b.md" {
		t.Errorf("unexpected edge %+v", edges[0])
	}
}
