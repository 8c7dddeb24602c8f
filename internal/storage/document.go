package storage

import (
	"database/sql"
	"fmt"
	"time"

	"lessonforge/internal/domain"
)

// DocumentStore implements domain.DocumentStore using SQLite. Only the
// markdown source is persisted; blocks are a derived cache and are
// re-parsed on load.
type DocumentStore struct {
	db *DB
}

func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) SaveDocument(d *domain.EditorDocument) error {
	_, err := s.db.Conn().Exec(
		`INSERT INTO documents (id, name, type, content, file_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, type = excluded.type, content = excluded.content,
		   file_path = excluded.file_path, updated_at = excluded.updated_at`,
		d.ID, d.Name, d.Type, d.Content, d.FilePath, d.CreatedAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *DocumentStore) LoadDocument(id string) (*domain.EditorDocument, error) {
	d := &domain.EditorDocument{}
	err := s.db.Conn().QueryRow(
		`SELECT id, name, type, content, file_path, created_at FROM documents WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Type, &d.Content, &d.FilePath, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return d, nil
}

func (s *DocumentStore) ListDocuments() ([]domain.EditorDocument, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, name, type, content, file_path, created_at FROM documents ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.EditorDocument
	for rows.Next() {
		var d domain.EditorDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Content, &d.FilePath, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *DocumentStore) DeleteDocument(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM documents WHERE id = ?`, id)
	return err
}
