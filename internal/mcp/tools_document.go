package mcpserver

import (
	"context"
	"fmt"

	"lessonforge/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDocumentTools() {
	// ── list_documents ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List all open documents with their id, name, type and dirty state"),
	), s.handleListDocuments)

	// ── create_document ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_document",
		mcp.WithDescription("Create a new document from markdown content"),
		mcp.WithString("name", mcp.Description("Document name"), mcp.Required()),
		mcp.WithString("type", mcp.Description("Document type: lesson, guide or custom (default lesson)")),
		mcp.WithString("content", mcp.Description("Initial markdown content")),
	), s.handleCreateDocument)

	// ── set_active_document ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_document",
		mcp.WithDescription("Set the active document for subsequent tool calls. Resets all read state: re-read before editing."),
		mcp.WithString("documentId", mcp.Description("ID of the document to make active"), mcp.Required()),
	), s.handleSetActiveDocument)

	// ── remove_document (destructive) ──────────────────
	s.mcp.AddTool(mcp.NewTool("remove_document",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove a document and its pending diffs and versions."),
		mcp.WithString("documentId", mcp.Description("Document ID to remove"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveDocument)

	// ── read_document ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read a document's full markdown content"),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleReadDocument)

	// ── save_document ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_document",
		mcp.WithDescription("Persist a document and snapshot a version"),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
		mcp.WithString("label", mcp.Description("Version label (optional)")),
	), s.handleSaveDocument)

	// ── list_versions ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_versions",
		mcp.WithDescription("List saved content snapshots of a document"),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleListVersions)

	// ── restore_version ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("restore_version",
		mcp.WithDescription("Replace a document's content with a saved snapshot"),
		mcp.WithString("versionId", mcp.Description("Version ID to restore"), mcp.Required()),
	), s.handleRestoreVersion)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

type documentSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Blocks  int    `json:"blocks"`
	IsDirty bool   `json:"isDirty"`
	Active  bool   `json:"active"`
}

func (s *Server) handleListDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activeID := s.docs.Manager().ActiveDocumentID()
	var summaries []documentSummary
	for _, d := range s.docs.Manager().GetAllDocuments() {
		summaries = append(summaries, documentSummary{
			ID:      d.ID,
			Name:    d.Name,
			Type:    string(d.Type),
			Blocks:  len(d.Blocks),
			IsDirty: d.IsDirty,
			Active:  d.ID == activeID,
		})
	}
	return jsonResult(summaries)
}

func (s *Server) handleCreateDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	docType := domain.DocumentType(req.GetString("type", string(domain.DocumentTypeLesson)))
	content := req.GetString("content", "")

	d, err := s.docs.CreateDocument(ctx, name, docType, content)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return jsonResult(d)
}

func (s *Server) handleSetActiveDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("documentId", "")
	if id == "" {
		return nil, fmt.Errorf("documentId is required")
	}
	if !s.docs.SetActiveDocument(ctx, id) {
		return nil, fmt.Errorf("document %s not found", id)
	}
	return textResult(fmt.Sprintf("Active document is now %s. Read state was reset: call list_blocks before editing.", id)), nil
}

func (s *Server) handleRemoveDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("documentId", "")
	if id == "" {
		return nil, fmt.Errorf("documentId is required")
	}
	if !s.docs.RemoveDocument(ctx, id) {
		return nil, fmt.Errorf("document %s not found", id)
	}
	return textResult(fmt.Sprintf("Document %s removed", id)), nil
}

func (s *Server) handleReadDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	d := s.docs.Manager().GetDocument(id)
	if d == nil {
		return nil, fmt.Errorf("document %s not found", id)
	}
	// Reading the whole document counts as having read it.
	if id == s.docs.Manager().ActiveDocumentID() {
		s.docs.Guard().MarkDocumentRead()
	}
	return textResult(d.Content), nil
}

func (s *Server) handleSaveDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	label := req.GetString("label", "manual")
	if err := s.docs.Save(id, label); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Document %s saved", id)), nil
}

func (s *Server) handleListVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	versions, err := s.docs.ListVersions(id)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	type versionSummary struct {
		ID        string `json:"id"`
		Label     string `json:"label"`
		CreatedAt string `json:"createdAt"`
	}
	var out []versionSummary
	for _, v := range versions {
		out = append(out, versionSummary{ID: v.ID, Label: v.Label, CreatedAt: v.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	return jsonResult(out)
}

func (s *Server) handleRestoreVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	versionID := req.GetString("versionId", "")
	if versionID == "" {
		return nil, fmt.Errorf("versionId is required")
	}
	if err := s.docs.RestoreVersion(ctx, versionID); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Version %s restored", versionID)), nil
}
