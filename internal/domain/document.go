package domain

import "time"

type DocumentType string

const (
	DocumentTypeLesson DocumentType = "lesson"
	DocumentTypeGuide  DocumentType = "guide"
	DocumentTypeCustom DocumentType = "custom"
)

// EditorDocument is a named container of block content. Content is the
// source of truth; Blocks is a derived cache kept consistent with it
// after every mutation.
type EditorDocument struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Type    DocumentType `json:"type"`
	Content string       `json:"content"`
	Blocks  []Block      `json:"blocks"`
	// IsDirty is true when the in-memory content has changed since the
	// last persistence call.
	IsDirty   bool      `json:"isDirty"`
	CreatedAt time.Time `json:"createdAt"`
	// FilePath links the document to a markdown file on disk. Optional;
	// used by the file-sync watcher.
	FilePath string `json:"filePath,omitempty"`
}

// DocumentStore persists documents keyed by their opaque ID.
type DocumentStore interface {
	SaveDocument(d *EditorDocument) error
	LoadDocument(id string) (*EditorDocument, error)
	ListDocuments() ([]EditorDocument, error)
	DeleteDocument(id string) error
}

// DocumentVersion is a point-in-time content snapshot.
type DocumentVersion struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	Label      string    `json:"label"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// VersionStore persists content snapshots per document.
type VersionStore interface {
	SaveVersion(v *DocumentVersion) error
	ListVersions(documentID string) ([]DocumentVersion, error)
	GetVersion(id string) (*DocumentVersion, error)
	DeleteVersionsByDocument(documentID string) error
}
