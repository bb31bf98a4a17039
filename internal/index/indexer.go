package index

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/markdown"
)

// Indexer feeds library documents into the database.
type Indexer struct {
	db      *DB
	parser  *markdown.Parser
	library *content.Library
}

func NewIndexer(db *DB, library *content.Library) *Indexer {
	return &Indexer{
		db:      db,
		parser:  markdown.NewParser(),
		library: library,
	}
}

// IndexAll re-indexes the whole library. Links are derived data and get
// rebuilt from source, so they are cleared up front along with the hashes
// that would otherwise short-circuit unchanged files.
func (idx *Indexer) IndexAll() error {
	if _, err := idx.db.Conn().Exec("DELETE FROM links"); err != nil {
		return fmt.Errorf("clear links: %w", err)
	}
	if _, err := idx.db.Conn().Exec("UPDATE documents SET hash = ''"); err != nil {
		return fmt.Errorf("clear hashes: %w", err)
	}

	docs, err := idx.library.Documents()
	if err != nil {
		return fmt.Errorf("list library: %w", err)
	}
	for _, d := range docs {
		if err := idx.IndexFile(idx.library.Abs(d.Path)); err != nil {
			return err
		}
	}
	return nil
}

// IndexFile indexes a single markdown file, skipping it when the stored
// content hash matches.
func (idx *Indexer) IndexFile(absPath string) error {
	source, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", absPath, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", absPath, err)
	}

	relPath, err := filepath.Rel(idx.library.Root, absPath)
	if err != nil {
		relPath = absPath
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(source))
	existing, _ := idx.db.DocumentHash(relPath)
	if hash == existing {
		return nil
	}

	doc := idx.parser.Parse(source)

	title := doc.Title()
	if title == "" {
		title = titleFromPath(relPath)
	}
	var tags []string
	if doc.Meta != nil {
		tags = doc.Meta.Tags
	}
	kind := content.KindForPath(relPath)

	docID, err := idx.db.UpsertDocument(relPath, kind.String(), title, hash, info.ModTime().Unix(), info.Size())
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	headingTexts := make([]string, len(doc.Headings))
	for i, h := range doc.Headings {
		headingTexts[i] = h.Text
	}
	if err := idx.db.UpdateFTS(docID, title, string(doc.Body()), strings.Join(tags, " "), strings.Join(headingTexts, " ")); err != nil {
		return fmt.Errorf("update FTS: %w", err)
	}

	if err := idx.db.ClearDocumentTags(docID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	for _, tag := range tags {
		tagID, err := idx.db.UpsertTag(tag)
		if err != nil {
			return fmt.Errorf("upsert tag %q: %w", tag, err)
		}
		if err := idx.db.TagDocument(docID, tagID); err != nil {
			return fmt.Errorf("tag document %q: %w", tag, err)
		}
	}

	if err := idx.db.ClearDocumentHeadings(docID); err != nil {
		return fmt.Errorf("clear headings: %w", err)
	}
	for _, h := range doc.Headings {
		if err := idx.db.InsertHeading(docID, h.Level, h.Text, h.Line); err != nil {
			return fmt.Errorf("insert heading %q: %w", h.Text, err)
		}
	}

	// Links are stored by basename so [[doc]] resolves regardless of the
	// target's directory.
	if err := idx.db.ClearDocumentLinks(docID); err != nil {
		return fmt.Errorf("clear links: %w", err)
	}
	for _, link := range doc.Links {
		target := filepath.Base(markdown.ResolveTarget(link.Target))
		if err := idx.db.InsertLink(docID, target, link.Section, link.Alias, link.Line, link.Col); err != nil {
			return fmt.Errorf("insert link to %q: %w", target, err)
		}
	}
	if err := idx.resolveLinks(docID); err != nil {
		return fmt.Errorf("resolve links: %w", err)
	}

	return nil
}

// RemoveFile drops a file from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	relPath, err := filepath.Rel(idx.library.Root, absPath)
	if err != nil {
		relPath = absPath
	}
	return idx.db.DeleteDocument(relPath)
}

// resolveLinks fills in target_id for links whose basename matches a known
// document.
func (idx *Indexer) resolveLinks(sourceID int64) error {
	_, err := idx.db.Conn().Exec(`
		UPDATE links SET target_id = (
			SELECT id FROM documents WHERE path = links.target_path OR path LIKE '%/' || links.target_path
		) WHERE source_id = ? AND target_id IS NULL
	`, sourceID)
	return err
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return name
}
