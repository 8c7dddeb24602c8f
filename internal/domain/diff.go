package domain

import "time"

type DiffAction string

const (
	DiffActionUpdate DiffAction = "update"
	DiffActionAdd    DiffAction = "add"
	DiffActionDelete DiffAction = "delete"
)

// AnchorStart is the sentinel BlockID meaning "insert before the first
// block" for add diffs.
const AnchorStart = "__start__"

// PendingDiff is a proposed, not-yet-committed edit against a document's
// blocks. For add diffs, NewContent carries a JSON-encoded BlockPayload
// (with plain-text fallback) and NewBlockID optionally pre-allocates the
// inserted block's ID so later diffs in the same batch can anchor on it.
type PendingDiff struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"documentId"`
	BlockID    string     `json:"blockId"`
	Action     DiffAction `json:"action"`
	OldContent string     `json:"oldContent,omitempty"`
	NewContent string     `json:"newContent,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	NewBlockID string     `json:"newBlockId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// BlockPayload is the structured form of an add diff's NewContent.
type BlockPayload struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Level   int    `json:"level,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

type ChangeType string

const (
	ChangeAdd       ChangeType = "add"
	ChangeRemove    ChangeType = "remove"
	ChangeUnchanged ChangeType = "unchanged"
)

// DiffChange is a single line or word change produced by the diff
// service. Display-only; never persisted.
type DiffChange struct {
	Type  ChangeType `json:"type"`
	Value string     `json:"value"`
}

// DiffStore persists queued pending diffs so proposals survive restarts.
type DiffStore interface {
	SaveDiff(d *PendingDiff) error
	ListDiffs(documentID string) ([]PendingDiff, error)
	DeleteDiff(id string) error
	DeleteDiffsByDocument(documentID string) error
}
