package storage

import (
	"database/sql"
	"fmt"

	"lessonforge/internal/domain"
)

// VersionStore implements domain.VersionStore using SQLite. Snapshots
// are append-only; restoring a version writes new content through the
// document service rather than rewriting history.
type VersionStore struct {
	db *DB
}

func NewVersionStore(db *DB) *VersionStore {
	return &VersionStore{db: db}
}

func (s *VersionStore) SaveVersion(v *domain.DocumentVersion) error {
	_, err := s.db.Conn().Exec(
		`INSERT INTO document_versions (id, document_id, label, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.DocumentID, v.Label, v.Content, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save version: %w", err)
	}
	return nil
}

func (s *VersionStore) ListVersions(documentID string) ([]domain.DocumentVersion, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, document_id, label, content, created_at
		 FROM document_versions WHERE document_id = ? ORDER BY created_at ASC`, documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []domain.DocumentVersion
	for rows.Next() {
		var v domain.DocumentVersion
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.Label, &v.Content, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (s *VersionStore) GetVersion(id string) (*domain.DocumentVersion, error) {
	v := &domain.DocumentVersion{}
	err := s.db.Conn().QueryRow(
		`SELECT id, document_id, label, content, created_at FROM document_versions WHERE id = ?`, id,
	).Scan(&v.ID, &v.DocumentID, &v.Label, &v.Content, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("version %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}

func (s *VersionStore) DeleteVersionsByDocument(documentID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM document_versions WHERE document_id = ?`, documentID)
	return err
}
