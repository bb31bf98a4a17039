package index

import (
	"database/sql"
	"path/filepath"
)

// SearchResult is one row out of the picker queries.
type SearchResult struct {
	ID    int64
	Path  string
	Kind  string
	Title string
	Rank  float64
}

// BacklinkResult is one document linking to a target.
type BacklinkResult struct {
	SourcePath  string
	SourceTitle string
	Line        int
	Col         int
}

// Edge is one resolved wiki link, for the graph pane.
type Edge struct {
	SourcePath string
	TargetPath string
}

// Search performs a full-text search across documents.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT d.id, d.path, d.kind, d.title, rank
		FROM documents_fts
		JOIN documents d ON d.id = documents_fts.rowid
		WHERE documents_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}

// SearchFiles matches document paths and titles by substring, for the
// picker's filter-as-you-type mode.
func (db *DB) SearchFiles(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, path, kind, title, 0 as rank
		FROM documents
		WHERE path LIKE ? OR title LIKE ?
		ORDER BY path
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}

// ListAll returns all documents, sorted by path.
func (db *DB) ListAll(limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := db.conn.Query(`
		SELECT id, path, kind, title, 0 as rank
		FROM documents
		ORDER BY path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Path, &r.Kind, &r.Title, &r.Rank); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// Backlinks returns all documents linking to the given path. Matches by
// basename since target_path stores basenames.
func (db *DB) Backlinks(targetPath string) ([]BacklinkResult, error) {
	basename := filepath.Base(targetPath)
	rows, err := db.conn.Query(`
		SELECT d.path, d.title, l.line, l.col
		FROM links l
		JOIN documents d ON d.id = l.source_id
		WHERE l.target_path = ?
		ORDER BY d.path
	`, basename)
	if err != nil {
		return nil, err
	}

	var results []BacklinkResult
	for rows.Next() {
		var r BacklinkResult
		if err := rows.Scan(&r.SourcePath, &r.SourceTitle, &r.Line, &r.Col); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// Edges returns every resolved link in the library, for the graph pane.
func (db *DB) Edges() ([]Edge, error) {
	rows, err := db.conn.Query(`
		SELECT s.path, t.path
		FROM links l
		JOIN documents s ON s.id = l.source_id
		JOIN documents t ON t.id = l.target_id
		WHERE l.target_id IS NOT NULL
		ORDER BY s.path, t.path
	`)
	if err != nil {
		return nil, err
	}

	var edges []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.SourcePath, &e.TargetPath); err != nil {
			_ = rows.Close()
			return nil, err
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return edges, nil
}

// FindByBasename returns the relative path of a document matching the
// given basename, or "".
func (db *DB) FindByBasename(basename string) (string, error) {
	var path string
	err := db.conn.QueryRow(
		`SELECT path FROM documents WHERE path = ? OR path LIKE ? LIMIT 1`,
		basename, "%/"+basename,
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return path, err
}
