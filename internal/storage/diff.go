package storage

import (
	"fmt"

	"lessonforge/internal/domain"
)

// DiffStore implements domain.DiffStore using SQLite. It mirrors the
// in-memory pending queue so proposed edits survive restarts.
type DiffStore struct {
	db *DB
}

func NewDiffStore(db *DB) *DiffStore {
	return &DiffStore{db: db}
}

func (s *DiffStore) SaveDiff(d *domain.PendingDiff) error {
	_, err := s.db.Conn().Exec(
		`INSERT OR REPLACE INTO pending_diffs
		   (id, document_id, block_id, action, old_content, new_content, reason, new_block_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.DocumentID, d.BlockID, d.Action, d.OldContent, d.NewContent, d.Reason, d.NewBlockID, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save pending diff: %w", err)
	}
	return nil
}

func (s *DiffStore) ListDiffs(documentID string) ([]domain.PendingDiff, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, document_id, block_id, action, old_content, new_content, reason, new_block_id, created_at
		 FROM pending_diffs WHERE document_id = ? ORDER BY created_at ASC`, documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diffs []domain.PendingDiff
	for rows.Next() {
		var d domain.PendingDiff
		if err := rows.Scan(&d.ID, &d.DocumentID, &d.BlockID, &d.Action, &d.OldContent, &d.NewContent, &d.Reason, &d.NewBlockID, &d.CreatedAt); err != nil {
			return nil, err
		}
		diffs = append(diffs, d)
	}
	return diffs, rows.Err()
}

func (s *DiffStore) DeleteDiff(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM pending_diffs WHERE id = ?`, id)
	return err
}

func (s *DiffStore) DeleteDiffsByDocument(documentID string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM pending_diffs WHERE document_id = ?`, documentID)
	return err
}
