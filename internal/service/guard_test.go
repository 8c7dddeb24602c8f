package service_test

import (
	"strings"
	"testing"

	"lessonforge/internal/service"
)

// ─────────────────────────────────────────────────────────────
// ReadWriteGuard tests
// ─────────────────────────────────────────────────────────────

func TestGuard_EditRefusedBeforeAnyRead(t *testing.T) {
	g := service.NewReadWriteGuard()
	v := g.CanEdit("blk-1")
	if v.Allowed {
		t.Fatal("expected edit to be refused before any read")
	}
	if !strings.Contains(v.Error, "list_blocks") {
		t.Errorf("expected error to name list_blocks, got %q", v.Error)
	}
}

func TestGuard_EditRefusedBeforeBlockRead(t *testing.T) {
	g := service.NewReadWriteGuard()
	g.MarkDocumentRead()
	v := g.CanEdit("blk-1")
	if v.Allowed {
		t.Fatal("expected edit to be refused before block read")
	}
	if !strings.Contains(v.Error, "read_block") {
		t.Errorf("expected error to name read_block, got %q", v.Error)
	}
	if !strings.Contains(v.Error, "blk-1") {
		t.Errorf("expected error to name the block, got %q", v.Error)
	}
}

func TestGuard_EditAllowedAfterReads(t *testing.T) {
	g := service.NewReadWriteGuard()
	g.MarkDocumentRead()
	g.MarkBlockRead("blk-1")
	if v := g.CanEdit("blk-1"); !v.Allowed {
		t.Errorf("expected edit allowed, got %q", v.Error)
	}
	if v := g.CanDelete("blk-1"); !v.Allowed {
		t.Errorf("expected delete allowed, got %q", v.Error)
	}
	// Another block stays gated.
	if v := g.CanEdit("blk-2"); v.Allowed {
		t.Error("expected edit of unread block to be refused")
	}
}

func TestGuard_AddOnlyNeedsDocumentRead(t *testing.T) {
	g := service.NewReadWriteGuard()
	if v := g.CanAdd(); v.Allowed {
		t.Error("expected add refused before document read")
	}
	g.MarkDocumentRead()
	if v := g.CanAdd(); !v.Allowed {
		t.Errorf("expected add allowed after document read, got %q", v.Error)
	}
}

func TestGuard_BlockReadAloneIsNotEnough(t *testing.T) {
	g := service.NewReadWriteGuard()
	g.MarkBlockRead("blk-1")
	if v := g.CanEdit("blk-1"); v.Allowed {
		t.Error("expected edit refused when the document itself was never listed")
	}
}

func TestGuard_ResetClearsEverything(t *testing.T) {
	g := service.NewReadWriteGuard()
	g.MarkDocumentRead()
	g.MarkBlockRead("blk-1")
	g.Reset()
	if v := g.CanEdit("blk-1"); v.Allowed {
		t.Error("expected edit refused after reset")
	}
	if v := g.CanAdd(); v.Allowed {
		t.Error("expected add refused after reset")
	}
}

func TestGuard_DocumentChangeResets(t *testing.T) {
	g := service.NewReadWriteGuard()
	g.MarkDocumentRead()
	g.MarkBlockRead("blk-1")
	g.OnDocumentChange()
	if v := g.CanDelete("blk-1"); v.Allowed {
		t.Error("expected delete refused after document switch")
	}
}
