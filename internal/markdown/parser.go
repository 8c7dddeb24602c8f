package markdown

import (
	"strings"

	"lessonforge/internal/domain"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ─────────────────────────────────────────────────────────────
// Markdown Block Parser — lowers a goldmark AST into flat,
// addressable blocks and back (see render.go).
// ─────────────────────────────────────────────────────────────

// ParseResult holds the lowered block sequence alongside the source text.
type ParseResult struct {
	Blocks   []domain.Block `json:"blocks"`
	Markdown string         `json:"markdown"`
}

var md = goldmark.New()

// Parse lowers markdown into a flat, ordered block sequence. Every call
// assigns fresh block IDs — parsing is not identity-preserving; callers
// that need stable IDs across edits use the mutation ops in
// internal/blocks instead of re-parsing.
//
// Node types outside {heading, paragraph, list item, fenced/indented
// code} follow a fixed policy: blockquote paragraphs are folded into
// plain paragraph blocks, HTML blocks are kept verbatim as paragraph
// blocks, thematic breaks are dropped. Parsing never fails; empty or
// whitespace-only input yields zero blocks.
func Parse(markdown string) ParseResult {
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	p := &lowering{src: source}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		p.lowerNode(n)
	}
	return ParseResult{Blocks: p.blocks, Markdown: markdown}
}

type lowering struct {
	src    []byte
	blocks []domain.Block
}

func (p *lowering) emit(t domain.BlockType, content string, level int, lang string) {
	p.blocks = append(p.blocks, domain.Block{
		ID:      domain.NewBlockID(),
		Type:    t,
		Content: content,
		Order:   len(p.blocks),
		Level:   level,
		Lang:    lang,
	})
}

func (p *lowering) lowerNode(n ast.Node) {
	switch t := n.(type) {
	case *ast.Heading:
		p.emit(domain.BlockTypeHeading, flattenInline(t, p.src), t.Level, "")
	case *ast.Paragraph:
		p.emit(domain.BlockTypeParagraph, flattenInline(t, p.src), 0, "")
	case *ast.List:
		p.lowerList(t, 0)
	case *ast.FencedCodeBlock:
		p.emit(domain.BlockTypeCode, rawLines(t, p.src), 0, string(t.Language(p.src)))
	case *ast.CodeBlock:
		p.emit(domain.BlockTypeCode, rawLines(t, p.src), 0, "")
	case *ast.Blockquote:
		// Fold quoted paragraphs into plain paragraphs.
		for c := t.FirstChild(); c != nil; c = c.NextSibling() {
			p.lowerNode(c)
		}
	case *ast.HTMLBlock:
		if raw := strings.TrimRight(rawLines(t, p.src), "\n"); raw != "" {
			p.emit(domain.BlockTypeParagraph, raw, 0, "")
		}
	case *ast.ThematicBreak:
		// Dropped from the block model.
	default:
		// Anything else degrades to a paragraph with its raw text.
		if raw := strings.TrimSpace(rawLines(n, p.src)); raw != "" {
			p.emit(domain.BlockTypeParagraph, raw, 0, "")
		}
	}
}

// lowerList emits one list-item block per item, depth-first, so each
// item is independently addressable. Nested lists increase the level.
func (p *lowering) lowerList(list *ast.List, level int) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var content strings.Builder
		var nested []*ast.List
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch cc := c.(type) {
			case *ast.List:
				nested = append(nested, cc)
			case *ast.TextBlock, *ast.Paragraph:
				if content.Len() > 0 {
					content.WriteByte(' ')
				}
				content.WriteString(flattenInline(c, p.src))
			}
		}
		p.emit(domain.BlockTypeListItem, content.String(), level, "")
		for _, sub := range nested {
			p.lowerList(sub, level+1)
		}
	}
}

// flattenInline collapses a node's inline children to plain text.
// Inline markup (emphasis, links, code spans) loses its markers; the
// block model carries plain text only.
func flattenInline(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.URL(src))
		default:
			if c.HasChildren() {
				sb.WriteString(flattenInline(c, src))
			}
		}
	}
	return sb.String()
}

// rawLines joins a node's source line segments verbatim.
func rawLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
