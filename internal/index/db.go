// Package index maintains the SQLite full-text index over the library.
// The picker and graph pane query it; the watcher keeps it current.
package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL DEFAULT 'note',
    title TEXT NOT NULL DEFAULT '',
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
    title, content, tags, headings,
    content=documents, content_rowid=id,
    tokenize='porter unicode61 remove_diacritics 2'
);

CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS document_tags (
    document_id INTEGER REFERENCES documents(id) ON DELETE CASCADE,
    tag_id INTEGER REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (document_id, tag_id)
);

CREATE TABLE IF NOT EXISTS links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    target_path TEXT NOT NULL,
    target_id INTEGER REFERENCES documents(id) ON DELETE SET NULL,
    section TEXT DEFAULT '',
    alias TEXT DEFAULT '',
    line INTEGER NOT NULL,
    col INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS headings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    level INTEGER NOT NULL,
    text TEXT NOT NULL,
    line INTEGER NOT NULL
);
`

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for advanced queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// UpsertDocument inserts or updates a document row and returns its ID.
func (db *DB) UpsertDocument(path, kind, title, hash string, modTime, size int64) (int64, error) {
	_, err := db.conn.Exec(`
		INSERT INTO documents (path, kind, title, mod_time, size, hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind = excluded.kind,
			title = excluded.title,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash
	`, path, kind, title, modTime, size, hash)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.conn.QueryRow("SELECT id FROM documents WHERE path = ?", path).Scan(&id)
	return id, err
}

// UpdateFTS replaces the FTS row for a document.
func (db *DB) UpdateFTS(docID int64, title, content, tags, headings string) error {
	// The delete fails for rows not yet in the index; the insert below
	// populates them either way.
	_, _ = db.conn.Exec("INSERT INTO documents_fts(documents_fts, rowid, title, content, tags, headings) VALUES('delete', ?, '', '', '', '')", docID)

	_, err := db.conn.Exec("INSERT INTO documents_fts(rowid, title, content, tags, headings) VALUES(?, ?, ?, ?, ?)",
		docID, title, content, tags, headings)
	return err
}

// UpsertTag ensures a tag exists and returns its ID.
func (db *DB) UpsertTag(name string) (int64, error) {
	if _, err := db.conn.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", name); err != nil {
		return 0, err
	}
	var id int64
	err := db.conn.QueryRow("SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	return id, err
}

// TagDocument associates a tag with a document.
func (db *DB) TagDocument(docID, tagID int64) error {
	_, err := db.conn.Exec("INSERT OR IGNORE INTO document_tags (document_id, tag_id) VALUES (?, ?)", docID, tagID)
	return err
}

// ClearDocumentTags removes all tag associations for a document.
func (db *DB) ClearDocumentTags(docID int64) error {
	_, err := db.conn.Exec("DELETE FROM document_tags WHERE document_id = ?", docID)
	return err
}

// InsertLink adds a wiki link record.
func (db *DB) InsertLink(sourceID int64, targetPath, section, alias string, line, col int) error {
	_, err := db.conn.Exec(`
		INSERT INTO links (source_id, target_path, section, alias, line, col)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sourceID, targetPath, section, alias, line, col)
	return err
}

// ClearDocumentLinks removes all outgoing links of a document.
func (db *DB) ClearDocumentLinks(docID int64) error {
	_, err := db.conn.Exec("DELETE FROM links WHERE source_id = ?", docID)
	return err
}

// InsertHeading adds a heading record.
func (db *DB) InsertHeading(docID int64, level int, text string, line int) error {
	_, err := db.conn.Exec("INSERT INTO headings (document_id, level, text, line) VALUES (?, ?, ?, ?)",
		docID, level, text, line)
	return err
}

// ClearDocumentHeadings removes all headings of a document.
func (db *DB) ClearDocumentHeadings(docID int64) error {
	_, err := db.conn.Exec("DELETE FROM headings WHERE document_id = ?", docID)
	return err
}

// DocumentHash returns the stored content hash for a path, or "".
func (db *DB) DocumentHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM documents WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeleteDocument removes a document and all its related data.
func (db *DB) DeleteDocument(path string) error {
	_, err := db.conn.Exec("DELETE FROM documents WHERE path = ?", path)
	return err
}
