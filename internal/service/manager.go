package service

import (
	"time"

	"lessonforge/internal/domain"
	"lessonforge/internal/markdown"
)

// ─────────────────────────────────────────────────────────────
// DocumentManager — in-memory document collection
// ─────────────────────────────────────────────────────────────

// DocumentManager owns the in-memory set of open documents and tracks
// which one is active. It is owned by the caller (one per editing
// session) rather than being ambient global state. Lookups never fail
// loudly: a missing document is nil/false, by design.
type DocumentManager struct {
	order    []string
	docs     map[string]*domain.EditorDocument
	activeID string
}

// NewDocumentManager loads the given documents in order. If activeID
// does not match any of them, the first document becomes active (or
// none when the list is empty).
func NewDocumentManager(initial []domain.EditorDocument, activeID string) *DocumentManager {
	m := &DocumentManager{docs: make(map[string]*domain.EditorDocument)}
	for i := range initial {
		d := initial[i]
		if d.Blocks == nil {
			d.Blocks = markdown.Parse(d.Content).Blocks
		}
		m.docs[d.ID] = &d
		m.order = append(m.order, d.ID)
	}
	if _, ok := m.docs[activeID]; ok {
		m.activeID = activeID
	} else if len(m.order) > 0 {
		m.activeID = m.order[0]
	}
	return m
}

// GetAllDocuments returns the documents in insertion order.
func (m *DocumentManager) GetAllDocuments() []*domain.EditorDocument {
	out := make([]*domain.EditorDocument, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.docs[id])
	}
	return out
}

// GetDocument returns the document with the given ID, or nil.
func (m *DocumentManager) GetDocument(id string) *domain.EditorDocument {
	return m.docs[id]
}

// GetActiveDocument returns the active document, or nil when none is.
func (m *DocumentManager) GetActiveDocument() *domain.EditorDocument {
	if m.activeID == "" {
		return nil
	}
	return m.docs[m.activeID]
}

// ActiveDocumentID returns the active document's ID ("" when none).
func (m *DocumentManager) ActiveDocumentID() string {
	return m.activeID
}

// SetActiveDocument switches the active document. Returns false and
// leaves state untouched when the ID is unknown.
func (m *DocumentManager) SetActiveDocument(id string) bool {
	if _, ok := m.docs[id]; !ok {
		return false
	}
	m.activeID = id
	return true
}

// AddDocument creates a new document, parses its content into blocks
// and returns the generated ID. The new document becomes active only
// when no document was active before.
func (m *DocumentManager) AddDocument(name string, docType domain.DocumentType, content string) string {
	d := &domain.EditorDocument{
		ID:        domain.NewDocumentID(),
		Name:      name,
		Type:      docType,
		Content:   content,
		Blocks:    markdown.Parse(content).Blocks,
		CreatedAt: time.Now(),
	}
	m.docs[d.ID] = d
	m.order = append(m.order, d.ID)
	if m.activeID == "" {
		m.activeID = d.ID
	}
	return d.ID
}

// RemoveDocument drops a document from the collection. When the removed
// document was active, the first remaining document becomes active (or
// none). Returns whether a removal occurred.
func (m *DocumentManager) RemoveDocument(id string) bool {
	if _, ok := m.docs[id]; !ok {
		return false
	}
	delete(m.docs, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.activeID == id {
		m.activeID = ""
		if len(m.order) > 0 {
			m.activeID = m.order[0]
		}
	}
	return true
}

// UpdateDocumentContent replaces the markdown source, re-parses the
// block cache and marks the document dirty.
func (m *DocumentManager) UpdateDocumentContent(id, newContent string) bool {
	d, ok := m.docs[id]
	if !ok {
		return false
	}
	d.Content = newContent
	d.Blocks = markdown.Parse(newContent).Blocks
	d.IsDirty = true
	return true
}

// UpdateDocumentBlocks replaces the block cache directly with
// caller-computed blocks (e.g. from the mutation ops) and marks the
// document dirty. Content is left untouched; callers that need the
// markdown source in sync re-render it themselves.
func (m *DocumentManager) UpdateDocumentBlocks(id string, blocks []domain.Block) bool {
	d, ok := m.docs[id]
	if !ok {
		return false
	}
	d.Blocks = blocks
	d.IsDirty = true
	return true
}

// MarkDocumentClean clears the dirty flag after a successful save.
func (m *DocumentManager) MarkDocumentClean(id string) {
	if d, ok := m.docs[id]; ok {
		d.IsDirty = false
	}
}

// Size returns the number of open documents.
func (m *DocumentManager) Size() int {
	return len(m.docs)
}
