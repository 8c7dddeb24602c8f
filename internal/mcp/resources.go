package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── lesson://documents ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"lesson://documents",
		"All Documents",
		mcp.WithMIMEType("application/json"),
	), s.handleDocumentsResource)

	// ── lesson://document/{documentId}/blocks ──────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"lesson://document/{documentId}/blocks",
			"Blocks of a Document",
		),
		s.handleDocumentBlocksResource,
	)
}

func (s *Server) handleDocumentsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type docSummary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}

	var summaries []docSummary
	for _, d := range s.docs.Manager().GetAllDocuments() {
		summaries = append(summaries, docSummary{ID: d.ID, Name: d.Name, Type: string(d.Type)})
	}

	data, _ := json.MarshalIndent(summaries, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "lesson://documents",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleDocumentBlocksResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	docID := extractDocumentIDFromURI(uri)
	if docID == "" {
		return nil, fmt.Errorf("could not extract documentId from URI: %s", uri)
	}

	d := s.docs.Manager().GetDocument(docID)
	if d == nil {
		return nil, fmt.Errorf("document %s not found", docID)
	}

	data, _ := json.MarshalIndent(d.Blocks, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// extractDocumentIDFromURI pulls the id out of
// lesson://document/{documentId}/blocks.
func extractDocumentIDFromURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, "lesson://document/")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, "/")
	return id
}
