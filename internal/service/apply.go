package service

import (
	"encoding/json"
	"fmt"

	"lessonforge/internal/blocks"
	"lessonforge/internal/domain"
	"lessonforge/internal/markdown"

	"github.com/kaptinlin/jsonrepair"
)

// ─────────────────────────────────────────────────────────────
// Apply engine — commits a batch of pending diffs to a block
// sequence and produces the updated markdown.
// ─────────────────────────────────────────────────────────────

// ApplyOutcome is the result of applying a diff batch.
type ApplyOutcome struct {
	Blocks          []domain.Block `json:"blocks"`
	UpdatedMarkdown string         `json:"updatedMarkdown"`
	Summary         string         `json:"summary"`
	AppliedChanges  []string       `json:"appliedChanges"`
}

// ApplyDiffs parses the markdown and applies the batch against that
// parse. Because parsing assigns fresh block IDs, the diffs must have
// been generated against this exact markdown within the same pass.
// Callers holding an already-parsed block sequence with known-stable
// IDs use ApplyDiffsToBlocks instead.
func ApplyDiffs(markdownText string, diffs []domain.PendingDiff, lang Language) (ApplyOutcome, error) {
	return ApplyDiffsToBlocks(markdown.Parse(markdownText).Blocks, diffs, lang)
}

// ApplyDiffsToBlocks processes diffs strictly in batch order against
// the given block sequence:
//
//   - update: replaces the target block's content; unknown IDs no-op.
//   - add: inserts after the anchor block, or at the start when the
//     anchor is the __start__ sentinel. The payload is decoded as JSON
//     (with repair), falling back to a plain paragraph. A pre-allocated
//     NewBlockID is honored so later diffs in the batch can anchor on a
//     block added earlier in the same batch. An unknown anchor is an
//     error and aborts the remaining diffs.
//   - delete: removes the target block; unknown IDs no-op.
//
// The final sequence is rendered back to markdown. The summary and
// per-change log are localized.
func ApplyDiffsToBlocks(blks []domain.Block, diffs []domain.PendingDiff, lang Language) (ApplyOutcome, error) {
	current := make([]domain.Block, len(blks))
	copy(current, blks)

	var changes []appliedChange
	counts := map[string]int{}

	for _, d := range diffs {
		switch d.Action {
		case domain.DiffActionUpdate:
			if domain.FindBlock(current, d.BlockID) < 0 {
				continue // stale proposal, skip silently
			}
			current = blocks.UpdateContent(current, d.BlockID, d.NewContent)
			changes = append(changes, appliedChange{action: "update", blockID: d.BlockID})
			counts["update"]++
		case domain.DiffActionAdd:
			anchor := d.BlockID
			if anchor == domain.AnchorStart {
				anchor = ""
			}
			payload := decodeAddPayload(d.NewContent)
			next, nb, err := blocks.Insert(current, anchor, domain.BlockType(payload.Type), payload.Content, payload.Level, d.NewBlockID)
			if err != nil {
				return ApplyOutcome{}, fmt.Errorf("apply add diff %s: %w", d.ID, err)
			}
			if payload.Lang != "" && nb.Type == domain.BlockTypeCode {
				next[nb.Order].Lang = payload.Lang
			}
			current = next
			changes = append(changes, appliedChange{action: "add", blockID: nb.ID})
			counts["add"]++
		case domain.DiffActionDelete:
			if domain.FindBlock(current, d.BlockID) < 0 {
				continue
			}
			current = blocks.Delete(current, d.BlockID)
			changes = append(changes, appliedChange{action: "delete", blockID: d.BlockID})
			counts["delete"]++
		default:
			continue // unknown action, skip
		}
	}

	log := make([]string, 0, len(changes))
	for _, c := range changes {
		log = append(log, changeDescription(lang, c))
	}

	return ApplyOutcome{
		Blocks:          current,
		UpdatedMarkdown: markdown.Render(current),
		Summary:         applySummary(lang, counts["add"], counts["update"], counts["delete"]),
		AppliedChanges:  log,
	}, nil
}

// decodeAddPayload turns an add diff's NewContent into a block payload.
// The ladder is: strict JSON, then repaired JSON (LLM output is often
// almost-JSON), then a plain paragraph carrying the raw text.
func decodeAddPayload(raw string) domain.BlockPayload {
	var p domain.BlockPayload
	if err := json.Unmarshal([]byte(raw), &p); err == nil && domain.ValidBlockType(p.Type) {
		return p
	}
	if repaired, err := jsonrepair.JSONRepair(raw); err == nil {
		p = domain.BlockPayload{}
		if err := json.Unmarshal([]byte(repaired), &p); err == nil && domain.ValidBlockType(p.Type) {
			return p
		}
	}
	return domain.BlockPayload{Type: string(domain.BlockTypeParagraph), Content: raw}
}
