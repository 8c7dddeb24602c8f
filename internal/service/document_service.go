package service

import (
	"context"
	"fmt"
	"time"

	"lessonforge/internal/domain"
	"lessonforge/internal/markdown"
	"lessonforge/pkg/logger"
)

// ─────────────────────────────────────────────────────────────
// Document Service — editing session over manager + stores
// ─────────────────────────────────────────────────────────────

// DocumentService ties the in-memory DocumentManager to persistence,
// the pending-diff queue and the read/write guard. It is the surface
// the MCP tool layer talks to. All stores are optional: with nil stores
// the service runs purely in memory.
type DocumentService struct {
	manager  *DocumentManager
	queue    *PendingQueue
	guard    *ReadWriteGuard
	store    domain.DocumentStore
	versions domain.VersionStore
	emitter  EventEmitter
	lang     Language
}

// NewDocumentService builds a service around an existing manager.
func NewDocumentService(manager *DocumentManager, queue *PendingQueue, store domain.DocumentStore, versions domain.VersionStore, emitter EventEmitter, lang Language) *DocumentService {
	if lang != LangZH {
		lang = LangEN
	}
	return &DocumentService{
		manager:  manager,
		queue:    queue,
		guard:    NewReadWriteGuard(),
		store:    store,
		versions: versions,
		emitter:  emitter,
		lang:     lang,
	}
}

// LoadFromStore builds a manager from everything the store holds, then
// wraps it in a service. Pending diffs are re-queued per document.
func LoadFromStore(store domain.DocumentStore, diffs domain.DiffStore, versions domain.VersionStore, emitter EventEmitter, lang Language) (*DocumentService, error) {
	docs, err := store.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	manager := NewDocumentManager(docs, "")
	queue := NewPendingQueue(diffs)
	for _, d := range docs {
		if err := queue.LoadForDocument(d.ID); err != nil {
			logger.Sugar.Warnw("load pending diffs", "document", d.ID, "error", err)
		}
	}
	return NewDocumentService(manager, queue, store, versions, emitter, lang), nil
}

// Manager exposes the underlying in-memory manager.
func (s *DocumentService) Manager() *DocumentManager { return s.manager }

// Guard exposes the read/write guard for the tool layer.
func (s *DocumentService) Guard() *ReadWriteGuard { return s.guard }

// Queue exposes the pending-diff queue.
func (s *DocumentService) Queue() *PendingQueue { return s.queue }

// Lang returns the summary language.
func (s *DocumentService) Lang() Language { return s.lang }

// CreateDocument adds a document and persists it.
func (s *DocumentService) CreateDocument(ctx context.Context, name string, docType domain.DocumentType, content string) (*domain.EditorDocument, error) {
	id := s.manager.AddDocument(name, docType, content)
	d := s.manager.GetDocument(id)
	if s.store != nil {
		if err := s.store.SaveDocument(d); err != nil {
			return nil, fmt.Errorf("persist document: %w", err)
		}
	}
	s.emitter.Emit(ctx, "editor:document-created", map[string]string{"documentId": id})
	return d, nil
}

// RemoveDocument drops a document, its queued diffs and its versions.
func (s *DocumentService) RemoveDocument(ctx context.Context, id string) bool {
	wasActive := id == s.manager.ActiveDocumentID()
	if !s.manager.RemoveDocument(id) {
		return false
	}
	s.queue.Clear(id)
	if s.store != nil {
		if err := s.store.DeleteDocument(id); err != nil {
			logger.Sugar.Warnw("delete document", "document", id, "error", err)
		}
	}
	if s.versions != nil {
		_ = s.versions.DeleteVersionsByDocument(id)
	}
	// Removing the active document moves focus to another document, so
	// the guard's read state is stale and must go.
	if wasActive {
		s.guard.OnDocumentChange()
	}
	s.emitter.Emit(ctx, "editor:document-removed", map[string]string{"documentId": id})
	return true
}

// SetActiveDocument switches the editing focus. The guard resets: all
// prior reads are invalidated by a document switch.
func (s *DocumentService) SetActiveDocument(ctx context.Context, id string) bool {
	if !s.manager.SetActiveDocument(id) {
		return false
	}
	s.guard.OnDocumentChange()
	s.emitter.Emit(ctx, "editor:active-document-changed", map[string]string{"documentId": id})
	return true
}

// UpdateContent replaces a document's markdown wholesale (free-text
// edit path). Queued diffs referencing pre-edit block IDs become stale;
// they will no-op on apply per the mutation-op contracts.
func (s *DocumentService) UpdateContent(ctx context.Context, id, content string) bool {
	if !s.manager.UpdateDocumentContent(id, content) {
		return false
	}
	s.emitter.Emit(ctx, "editor:document-changed", map[string]string{"documentId": id})
	return true
}

// Save persists a document's current content, snapshots a version and
// clears the dirty flag.
func (s *DocumentService) Save(id, label string) error {
	d := s.manager.GetDocument(id)
	if d == nil {
		return fmt.Errorf("document %s not found", id)
	}
	if s.store != nil {
		if err := s.store.SaveDocument(d); err != nil {
			return fmt.Errorf("save document %s: %w", id, err)
		}
	}
	if s.versions != nil {
		v := &domain.DocumentVersion{
			ID:         domain.NewVersionID(),
			DocumentID: id,
			Label:      label,
			Content:    d.Content,
			CreatedAt:  time.Now(),
		}
		if err := s.versions.SaveVersion(v); err != nil {
			logger.Sugar.Warnw("snapshot version", "document", id, "error", err)
		}
	}
	s.manager.MarkDocumentClean(id)
	return nil
}

// SaveDirty persists every dirty document. Used by the autosave loop.
func (s *DocumentService) SaveDirty() int {
	saved := 0
	for _, d := range s.manager.GetAllDocuments() {
		if !d.IsDirty {
			continue
		}
		if err := s.Save(d.ID, "autosave"); err != nil {
			logger.Sugar.Warnw("autosave", "document", d.ID, "error", err)
			continue
		}
		saved++
	}
	return saved
}

// ListVersions returns a document's snapshots, newest last.
func (s *DocumentService) ListVersions(id string) ([]domain.DocumentVersion, error) {
	if s.versions == nil {
		return nil, nil
	}
	return s.versions.ListVersions(id)
}

// RestoreVersion replaces a document's content with a snapshot's.
func (s *DocumentService) RestoreVersion(ctx context.Context, versionID string) error {
	if s.versions == nil {
		return fmt.Errorf("version store not configured")
	}
	v, err := s.versions.GetVersion(versionID)
	if err != nil {
		return fmt.Errorf("load version %s: %w", versionID, err)
	}
	if !s.UpdateContent(ctx, v.DocumentID, v.Content) {
		return fmt.Errorf("document %s not found", v.DocumentID)
	}
	return nil
}

// ProposeDiff queues a proposed edit against a document. For add diffs
// the inserted block's ID is pre-allocated here, so the caller can
// chain further adds anchored on it before it exists.
func (s *DocumentService) ProposeDiff(ctx context.Context, documentID, blockID string, action domain.DiffAction, oldContent, newContent, reason string) (domain.PendingDiff, error) {
	if s.manager.GetDocument(documentID) == nil {
		return domain.PendingDiff{}, fmt.Errorf("document %s not found", documentID)
	}
	d := domain.PendingDiff{
		ID:         domain.NewDiffID(),
		DocumentID: documentID,
		BlockID:    blockID,
		Action:     action,
		OldContent: oldContent,
		NewContent: newContent,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}
	if action == domain.DiffActionAdd {
		d.NewBlockID = domain.NewBlockID()
	}
	if err := s.queue.Enqueue(d); err != nil {
		logger.Sugar.Warnw("persist pending diff", "diff", d.ID, "error", err)
	}
	s.emitter.Emit(ctx, "editor:diff-proposed", d)
	return d, nil
}

// ApplyDiff commits a single queued diff to the document. On failure
// the diff goes back to the front of the queue.
func (s *DocumentService) ApplyDiff(ctx context.Context, documentID, diffID string) (ApplyOutcome, error) {
	d, ok := s.queue.Take(documentID, diffID)
	if !ok {
		return ApplyOutcome{}, fmt.Errorf("pending diff %s not found", diffID)
	}
	outcome, err := s.commit(ctx, documentID, []domain.PendingDiff{d})
	if err != nil {
		s.queue.Requeue(d)
		return ApplyOutcome{}, err
	}
	return outcome, nil
}

// RejectDiff drops a single queued diff without applying it.
func (s *DocumentService) RejectDiff(ctx context.Context, documentID, diffID string) bool {
	_, ok := s.queue.Take(documentID, diffID)
	if ok {
		s.emitter.Emit(ctx, "editor:diff-rejected", map[string]string{"documentId": documentID, "diffId": diffID})
	}
	return ok
}

// ApplyAllDiffs commits the whole queue in order. The batch is
// all-or-nothing at the commit boundary: when any diff fails (unknown
// add anchor), nothing is committed and the queue is left untouched.
func (s *DocumentService) ApplyAllDiffs(ctx context.Context, documentID string) (ApplyOutcome, error) {
	diffs := s.queue.List(documentID)
	if len(diffs) == 0 {
		return ApplyOutcome{}, fmt.Errorf("no pending diffs for document %s", documentID)
	}
	outcome, err := s.commit(ctx, documentID, diffs)
	if err != nil {
		return ApplyOutcome{}, err
	}
	s.queue.Clear(documentID)
	return outcome, nil
}

// RejectAllDiffs drops every queued diff for a document.
func (s *DocumentService) RejectAllDiffs(ctx context.Context, documentID string) int {
	n := s.queue.Clear(documentID)
	if n > 0 {
		s.emitter.Emit(ctx, "editor:diffs-rejected", map[string]any{"documentId": documentID, "count": n})
	}
	return n
}

// commit runs the apply engine against the document's cached blocks
// (whose IDs the agent saw) and writes the result back: blocks first,
// then the re-rendered markdown, keeping content and cache consistent.
func (s *DocumentService) commit(ctx context.Context, documentID string, diffs []domain.PendingDiff) (ApplyOutcome, error) {
	doc := s.manager.GetDocument(documentID)
	if doc == nil {
		return ApplyOutcome{}, fmt.Errorf("document %s not found", documentID)
	}
	outcome, err := ApplyDiffsToBlocks(doc.Blocks, diffs, s.lang)
	if err != nil {
		return ApplyOutcome{}, err
	}
	s.manager.UpdateDocumentBlocks(documentID, outcome.Blocks)
	doc.Content = outcome.UpdatedMarkdown
	s.emitter.Emit(ctx, "editor:diffs-applied", map[string]any{
		"documentId": documentID,
		"summary":    outcome.Summary,
		"changes":    outcome.AppliedChanges,
	})
	return outcome, nil
}

// RenderDocument re-renders a document's markdown from its block
// cache. For callers that replaced blocks directly and need the source
// back in sync.
func (s *DocumentService) RenderDocument(id string) (string, bool) {
	d := s.manager.GetDocument(id)
	if d == nil {
		return "", false
	}
	return markdown.Render(d.Blocks), true
}
