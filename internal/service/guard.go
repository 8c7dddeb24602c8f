package service

import (
	"fmt"
	"sync"
)

// ─────────────────────────────────────────────────────────────
// ReadWriteGuard — read-before-write gate for agent edits
// ─────────────────────────────────────────────────────────────

// Verdict is the result of a guard check. When not allowed, Error names
// the missing prerequisite tool call.
type Verdict struct {
	Allowed bool   `json:"allowed"`
	Error   string `json:"error,omitempty"`
}

// ReadWriteGuard tracks what an external agent has read on the current
// document and refuses edits against blocks it has never seen. This
// keeps the agent from blind-editing out of stale or missing context.
// State is per-document: switching documents clears everything.
type ReadWriteGuard struct {
	mu           sync.Mutex
	documentRead bool
	readBlocks   map[string]struct{}
}

func NewReadWriteGuard() *ReadWriteGuard {
	return &ReadWriteGuard{readBlocks: make(map[string]struct{})}
}

// MarkDocumentRead records that the agent has listed the document's blocks.
func (g *ReadWriteGuard) MarkDocumentRead() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.documentRead = true
}

// MarkBlockRead records that the agent has read an individual block.
func (g *ReadWriteGuard) MarkBlockRead(blockID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readBlocks[blockID] = struct{}{}
}

// CanEdit reports whether the agent may update the given block.
func (g *ReadWriteGuard) CanEdit(blockID string) Verdict {
	return g.checkBlock(blockID, "edit")
}

// CanDelete reports whether the agent may delete the given block.
func (g *ReadWriteGuard) CanDelete(blockID string) Verdict {
	return g.checkBlock(blockID, "delete")
}

// CanAdd reports whether the agent may insert a new block. Adding only
// requires having read the document, not any particular block.
func (g *ReadWriteGuard) CanAdd() Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.documentRead {
		return Verdict{Error: "document has not been read: call list_blocks first"}
	}
	return Verdict{Allowed: true}
}

func (g *ReadWriteGuard) checkBlock(blockID, verb string) Verdict {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.documentRead {
		return Verdict{Error: "document has not been read: call list_blocks first"}
	}
	if _, ok := g.readBlocks[blockID]; !ok {
		return Verdict{Error: fmt.Sprintf("cannot %s block %s before reading it: call read_block first", verb, blockID)}
	}
	return Verdict{Allowed: true}
}

// Reset clears all read state.
func (g *ReadWriteGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.documentRead = false
	g.readBlocks = make(map[string]struct{})
}

// OnDocumentChange clears all read state. Same semantics as Reset;
// called automatically when the active document switches.
func (g *ReadWriteGuard) OnDocumentChange() {
	g.Reset()
}
