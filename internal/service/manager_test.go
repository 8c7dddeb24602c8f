package service_test

import (
	"testing"

	"lessonforge/internal/domain"
	"lessonforge/internal/service"
)

// ─────────────────────────────────────────────────────────────
// DocumentManager tests
// ─────────────────────────────────────────────────────────────

func TestManager_UnknownActiveIDFallsBackToFirst(t *testing.T) {
	docs := []domain.EditorDocument{
		{ID: "doc-a", Name: "A", Type: domain.DocumentTypeLesson, Content: "# A"},
		{ID: "doc-b", Name: "B", Type: domain.DocumentTypeLesson, Content: "# B"},
	}
	m := service.NewDocumentManager(docs, "doc-missing")
	if got := m.ActiveDocumentID(); got != "doc-a" {
		t.Errorf("expected doc-a active, got %q", got)
	}
}

func TestManager_EmptyStart(t *testing.T) {
	m := service.NewDocumentManager(nil, "")
	if m.GetActiveDocument() != nil {
		t.Error("expected no active document")
	}
	if m.Size() != 0 {
		t.Errorf("expected size 0, got %d", m.Size())
	}
	if m.GetDocument("doc-x") != nil {
		t.Error("expected nil for unknown document")
	}
}

func TestManager_InitialContentIsParsed(t *testing.T) {
	docs := []domain.EditorDocument{
		{ID: "doc-a", Name: "A", Type: domain.DocumentTypeLesson, Content: "# Title\n\nBody"},
	}
	m := service.NewDocumentManager(docs, "doc-a")
	d := m.GetDocument("doc-a")
	if d == nil {
		t.Fatal("expected document")
	}
	if len(d.Blocks) != 2 {
		t.Fatalf("expected 2 parsed blocks, got %d", len(d.Blocks))
	}
}

func TestManager_AddDocument(t *testing.T) {
	m := service.NewDocumentManager(nil, "")
	id := m.AddDocument("Lesson", domain.DocumentTypeLesson, "# Volcanoes\n\n- Magma")
	d := m.GetDocument(id)
	if d == nil {
		t.Fatal("expected document after add")
	}
	if len(d.Blocks) != 2 {
		t.Errorf("expected 2 blocks, got %d", len(d.Blocks))
	}
	// First document becomes active automatically.
	if m.ActiveDocumentID() != id {
		t.Errorf("expected %s active, got %s", id, m.ActiveDocumentID())
	}

	// A second add must not steal focus.
	id2 := m.AddDocument("Other", domain.DocumentTypeGuide, "")
	if m.ActiveDocumentID() != id {
		t.Errorf("expected %s to stay active, got %s", id, m.ActiveDocumentID())
	}
	if m.Size() != 2 {
		t.Errorf("expected 2 documents, got %d", m.Size())
	}
	_ = id2
}

func TestManager_SetActiveDocument(t *testing.T) {
	m := service.NewDocumentManager(nil, "")
	a := m.AddDocument("A", domain.DocumentTypeLesson, "")
	b := m.AddDocument("B", domain.DocumentTypeLesson, "")

	if !m.SetActiveDocument(b) {
		t.Fatal("expected switch to succeed")
	}
	if m.ActiveDocumentID() != b {
		t.Errorf("expected %s active, got %s", b, m.ActiveDocumentID())
	}
	if m.SetActiveDocument("doc-ghost") {
		t.Error("expected switch to unknown document to fail")
	}
	if m.ActiveDocumentID() != b {
		t.Error("failed switch must not change the active document")
	}
	_ = a
}

func TestManager_RemoveDocument(t *testing.T) {
	m := service.NewDocumentManager(nil, "")
	a := m.AddDocument("A", domain.DocumentTypeLesson, "")
	b := m.AddDocument("B", domain.DocumentTypeLesson, "")

	if !m.RemoveDocument(a) {
		t.Fatal("expected removal to succeed")
	}
	// Active falls to the first remaining document.
	if m.ActiveDocumentID() != b {
		t.Errorf("expected %s active after removal, got %s", b, m.ActiveDocumentID())
	}
	if m.RemoveDocument(a) {
		t.Error("expected second removal to fail")
	}
	if !m.RemoveDocument(b) {
		t.Fatal("expected removal to succeed")
	}
	if m.ActiveDocumentID() != "" {
		t.Errorf("expected no active document, got %q", m.ActiveDocumentID())
	}
}

func TestManager_GetAllDocumentsInsertionOrder(t *testing.T) {
	m := service.NewDocumentManager(nil, "")
	a := m.AddDocument("A", domain.DocumentTypeLesson, "")
	b := m.AddDocument("B", domain.DocumentTypeLesson, "")
	c := m.AddDocument("C", domain.DocumentTypeLesson, "")

	all := m.GetAllDocuments()
	if len(all) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(all))
	}
	for i, want := range []string{a, b, c} {
		if all[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, all[i].ID)
		}
	}
}

func TestManager_UpdateDocumentContentReparsesAndDirties(t *testing.T) {
	m := service.NewDocumentManager(nil, "")
	id := m.AddDocument("A", domain.DocumentTypeLesson, "# Old")

	if !m.UpdateDocumentContent(id, "# New\n\nParagraph") {
		t.Fatal("expected update to succeed")
	}
	d := m.GetDocument(id)
	if d.Content != "# New\n\nParagraph" {
		t.Errorf("content not replaced: %q", d.Content)
	}
	if len(d.Blocks) != 2 {
		t.Errorf("expected re-parse to yield 2 blocks, got %d", len(d.Blocks))
	}
	if !d.IsDirty {
		t.Error("expected document to be dirty")
	}

	m.MarkDocumentClean(id)
	if m.GetDocument(id).IsDirty {
		t.Error("expected document to be clean")
	}

	if m.UpdateDocumentContent("doc-ghost", "x") {
		t.Error("expected update of unknown document to fail")
	}
}

func TestManager_UpdateDocumentBlocksLeavesContentAlone(t *testing.T) {
	m := service.NewDocumentManager(nil, "")
	id := m.AddDocument("A", domain.DocumentTypeLesson, "# Old")

	newBlocks := []domain.Block{
		{ID: "blk-x", Type: domain.BlockTypeParagraph, Content: "replaced", Order: 0},
	}
	if !m.UpdateDocumentBlocks(id, newBlocks) {
		t.Fatal("expected update to succeed")
	}
	d := m.GetDocument(id)
	if d.Content != "# Old" {
		t.Errorf("content must stay untouched, got %q", d.Content)
	}
	if len(d.Blocks) != 1 || d.Blocks[0].ID != "blk-x" {
		t.Errorf("blocks not replaced: %+v", d.Blocks)
	}
	if !d.IsDirty {
		t.Error("expected document to be dirty")
	}
}
