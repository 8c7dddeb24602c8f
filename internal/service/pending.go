package service

import (
	"sync"

	"lessonforge/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// PendingQueue — per-document queues of proposed edits
// ─────────────────────────────────────────────────────────────

// PendingQueue accumulates proposed diffs keyed by document. Diffs are
// held in arrival order and only leave the queue by being applied or
// rejected. The in-memory queue is authoritative; when a DiffStore is
// attached, it mirrors the queue so proposals survive restarts.
type PendingQueue struct {
	mu    sync.Mutex
	byDoc map[string][]domain.PendingDiff
	store domain.DiffStore
}

// NewPendingQueue creates an empty queue. store may be nil for a purely
// in-memory queue.
func NewPendingQueue(store domain.DiffStore) *PendingQueue {
	return &PendingQueue{byDoc: make(map[string][]domain.PendingDiff), store: store}
}

// LoadForDocument pulls any persisted diffs for a document into the
// in-memory queue. Called once per document at startup.
func (q *PendingQueue) LoadForDocument(documentID string) error {
	if q.store == nil {
		return nil
	}
	diffs, err := q.store.ListDiffs(documentID)
	if err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.byDoc[documentID] = diffs
	return nil
}

// Enqueue appends a diff to its document's queue.
func (q *PendingQueue) Enqueue(d domain.PendingDiff) error {
	q.mu.Lock()
	q.byDoc[d.DocumentID] = append(q.byDoc[d.DocumentID], d)
	q.mu.Unlock()
	if q.store != nil {
		return q.store.SaveDiff(&d)
	}
	return nil
}

// List returns a copy of a document's queued diffs in queue order.
func (q *PendingQueue) List(documentID string) []domain.PendingDiff {
	q.mu.Lock()
	defer q.mu.Unlock()
	src := q.byDoc[documentID]
	out := make([]domain.PendingDiff, len(src))
	copy(out, src)
	return out
}

// Take removes and returns a single diff by ID.
func (q *PendingQueue) Take(documentID, diffID string) (domain.PendingDiff, bool) {
	q.mu.Lock()
	var taken domain.PendingDiff
	found := false
	src := q.byDoc[documentID]
	for i, d := range src {
		if d.ID == diffID {
			taken = d
			q.byDoc[documentID] = append(src[:i], src[i+1:]...)
			found = true
			break
		}
	}
	q.mu.Unlock()
	if found && q.store != nil {
		_ = q.store.DeleteDiff(diffID)
	}
	return taken, found
}

// Requeue puts a diff back at the front of its document's queue. Used
// when applying a taken diff fails and it should stay pending.
func (q *PendingQueue) Requeue(d domain.PendingDiff) {
	q.mu.Lock()
	q.byDoc[d.DocumentID] = append([]domain.PendingDiff{d}, q.byDoc[d.DocumentID]...)
	q.mu.Unlock()
	if q.store != nil {
		_ = q.store.SaveDiff(&d)
	}
}

// Clear drops all diffs for a document and returns how many were dropped.
func (q *PendingQueue) Clear(documentID string) int {
	q.mu.Lock()
	n := len(q.byDoc[documentID])
	delete(q.byDoc, documentID)
	q.mu.Unlock()
	if n > 0 && q.store != nil {
		_ = q.store.DeleteDiffsByDocument(documentID)
	}
	return n
}

// Size returns the number of diffs queued for a document.
func (q *PendingQueue) Size(documentID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.byDoc[documentID])
}
