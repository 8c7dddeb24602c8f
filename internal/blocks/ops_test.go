package blocks_test

import (
	"testing"

	"lessonforge/internal/blocks"
	"lessonforge/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Block mutation op tests
// ─────────────────────────────────────────────────────────────

func threeParagraphs() []domain.Block {
	return []domain.Block{
		{ID: "b1", Type: domain.BlockTypeParagraph, Content: "one", Order: 0},
		{ID: "b2", Type: domain.BlockTypeParagraph, Content: "two", Order: 1},
		{ID: "b3", Type: domain.BlockTypeParagraph, Content: "three", Order: 2},
	}
}

func assertDenseOrder(t *testing.T, got []domain.Block) {
	t.Helper()
	for i, b := range got {
		if b.Order != i {
			t.Errorf("block %s: expected order %d, got %d", b.ID, i, b.Order)
		}
	}
}

func TestUpdateContent(t *testing.T) {
	in := threeParagraphs()
	out := blocks.UpdateContent(in, "b2", "changed")

	if out[1].Content != "changed" {
		t.Errorf("expected content %q, got %q", "changed", out[1].Content)
	}
	if out[1].ID != "b2" || out[1].Order != 1 {
		t.Errorf("identity not preserved: %+v", out[1])
	}
	if in[1].Content != "two" {
		t.Errorf("input mutated: %q", in[1].Content)
	}
}

func TestUpdateContent_UnknownIDIsNoop(t *testing.T) {
	in := threeParagraphs()
	out := blocks.UpdateContent(in, "nope", "changed")
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("block %d changed: %+v", i, out[i])
		}
	}
}

func TestInsert_AfterBlock(t *testing.T) {
	out, nb, err := blocks.Insert(threeParagraphs(), "b1", domain.BlockTypeParagraph, "inserted", 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(out))
	}
	if out[1].ID != nb.ID || out[1].Content != "inserted" {
		t.Errorf("expected inserted block at position 1, got %+v", out[1])
	}
	if nb.Order != 1 {
		t.Errorf("expected new block order 1, got %d", nb.Order)
	}
	// Untouched blocks keep their IDs; followers shift by one.
	if out[0].ID != "b1" || out[2].ID != "b2" || out[3].ID != "b3" {
		t.Errorf("unexpected ID sequence: %s %s %s %s", out[0].ID, out[1].ID, out[2].ID, out[3].ID)
	}
	assertDenseOrder(t, out)
}

func TestInsert_AtStart(t *testing.T) {
	out, nb, err := blocks.Insert(threeParagraphs(), "", domain.BlockTypeHeading, "Title", 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ID != nb.ID || out[0].Order != 0 {
		t.Errorf("expected new block first, got %+v", out[0])
	}
	if out[1].ID != "b1" || out[1].Order != 1 {
		t.Errorf("expected b1 shifted to order 1, got %+v", out[1])
	}
	assertDenseOrder(t, out)
}

func TestInsert_ExplicitID(t *testing.T) {
	out, nb, err := blocks.Insert(threeParagraphs(), "b3", domain.BlockTypeParagraph, "tail", 0, "blk-explicit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nb.ID != "blk-explicit" {
		t.Errorf("expected explicit ID, got %s", nb.ID)
	}
	if out[3].ID != "blk-explicit" {
		t.Errorf("expected explicit-ID block last, got %s", out[3].ID)
	}
}

func TestInsert_UnknownAnchor(t *testing.T) {
	_, _, err := blocks.Insert(threeParagraphs(), "ghost", domain.BlockTypeParagraph, "x", 0, "")
	if err == nil {
		t.Fatal("expected error for unknown anchor")
	}
}

func TestInsert_GeneratesFreshID(t *testing.T) {
	_, nb, err := blocks.Insert(threeParagraphs(), "b1", domain.BlockTypeParagraph, "x", 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nb.ID == "" || nb.ID == "b1" || nb.ID == "b2" || nb.ID == "b3" {
		t.Errorf("expected fresh ID, got %q", nb.ID)
	}
}

func TestDelete_MiddleReindexes(t *testing.T) {
	out := blocks.Delete(threeParagraphs(), "b2")
	if len(out) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(out))
	}
	if out[0].ID != "b1" || out[1].ID != "b3" {
		t.Errorf("unexpected survivors: %s %s", out[0].ID, out[1].ID)
	}
	assertDenseOrder(t, out)
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	out := blocks.Delete(threeParagraphs(), "ghost")
	if len(out) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(out))
	}
	assertDenseOrder(t, out)
}

func TestDelete_DoesNotMutateInput(t *testing.T) {
	in := threeParagraphs()
	blocks.Delete(in, "b1")
	if len(in) != 3 || in[0].ID != "b1" || in[0].Order != 0 {
		t.Errorf("input mutated: %+v", in)
	}
}
