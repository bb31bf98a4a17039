package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Well-known subdirectories of a library. Threads are long-running topic
// documents, notes are one-off captures, podcasts holds per-episode notes.
const (
	ThreadsDir  = "threads"
	NotesDir    = "notes"
	PodcastsDir = "podcasts"
)

// Document is one markdown file in the library.
type Document struct {
	Name  string // base name without extension
	Path  string // library-relative path
	Kind  Kind
	Depth int
}

// Library is the on-disk markdown collection every document pane reads
// from. All paths in the API are relative to Root.
type Library struct {
	Root string
}

func NewLibrary(root string) *Library {
	return &Library{Root: root}
}

// Abs resolves a library-relative path.
func (l *Library) Abs(rel string) string {
	return filepath.Join(l.Root, rel)
}

// KindForPath maps a library-relative path to its content kind by
// top-level directory. Files outside the known directories are notes.
func KindForPath(rel string) Kind {
	top, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	switch top {
	case ThreadsDir:
		return KindThread
	case PodcastsDir:
		return KindPodcast
	default:
		return KindNote
	}
}

// Documents walks the library and returns every markdown file, sorted by
// path. Hidden files and directories are skipped.
func (l *Library) Documents() ([]Document, error) {
	var docs []Document

	err := filepath.Walk(l.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		rel, _ := filepath.Rel(l.Root, path)
		if rel == "." {
			return nil
		}

		name := filepath.Base(path)
		if strings.HasPrefix(name, ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(name, ".md") {
			return nil
		}

		docs = append(docs, Document{
			Name:  strings.TrimSuffix(name, ".md"),
			Path:  rel,
			Kind:  KindForPath(rel),
			Depth: strings.Count(rel, string(filepath.Separator)),
		})
		return nil
	})

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, err
}

// Handle returns the content handle for a document.
func (d Document) Handle() Handle {
	return Handle{Kind: d.Kind, Ref: d.Path}
}

// Read returns a document's raw contents.
func (l *Library) Read(rel string) ([]byte, error) {
	return os.ReadFile(l.Abs(rel))
}

// Create writes a new document, refusing to overwrite. Returns the
// library-relative path actually used.
func (l *Library) Create(rel, body string) (string, error) {
	abs := l.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if _, err := os.Stat(abs); err == nil {
		return "", fmt.Errorf("%s already exists", rel)
	}
	if err := os.WriteFile(abs, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return rel, nil
}

// CreateThread starts a new thread document from a title.
func (l *Library) CreateThread(title string) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q produces an empty slug", title)
	}
	rel := filepath.Join(ThreadsDir, slug+".md")
	body := fmt.Sprintf(`---
title: %s
date: %s
tags: [thread]
---

# %s

`, title, time.Now().Format("2006-01-02"), title)
	return l.Create(rel, body)
}

// CreateNote captures a quick timestamped note.
func (l *Library) CreateNote() (string, error) {
	now := time.Now()
	stamp := now.Format("2006-01-02-150405")
	rel := filepath.Join(NotesDir, stamp+".md")
	body := fmt.Sprintf(`---
title: Note %s
date: %s
tags: [note]
---

`, stamp, now.Format("2006-01-02"))
	return l.Create(rel, body)
}

// Slugify converts a title to a filename-friendly slug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "-")

	var buf strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			buf.WriteRune(r)
		}
	}

	out := buf.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}
