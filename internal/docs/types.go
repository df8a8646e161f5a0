package docs

import (
	"fmt"

	docs "google.golang.org/api/docs/v1"

	"github.com/teemow/gworkspace-mcp/internal/render"
)

const documentURLFormat = "https://docs.google.com/document/d/%s/edit"

// Document is the normalized form of a fetched document
type Document struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	RevisionID string `json:"revision_id,omitempty"`
	URL        string `json:"url"`
	Content    string `json:"content"`
}

// UpdateResult describes the outcome of a write to a document
type UpdateResult struct {
	DocumentID   string `json:"document_id"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url"`
	RepliesCount int    `json:"replies_count"`
	RevisionID   string `json:"revision_id,omitempty"`
}

// NewDocument normalizes a fetched document
func NewDocument(doc *docs.Document) Document {
	return Document{
		DocumentID: doc.DocumentId,
		Title:      render.OrDefault(doc.Title, render.Untitled),
		RevisionID: doc.RevisionId,
		URL:        DocumentURL(doc.DocumentId),
		Content:    ExtractText(doc),
	}
}

// NewUpdateResult normalizes a batch update response
func NewUpdateResult(documentID string, resp *docs.BatchUpdateDocumentResponse) UpdateResult {
	result := UpdateResult{
		DocumentID: documentID,
		URL:        DocumentURL(documentID),
	}
	if resp != nil {
		result.RepliesCount = len(resp.Replies)
		if resp.WriteControl != nil {
			result.RevisionID = resp.WriteControl.RequiredRevisionId
		}
	}
	return result
}

// DocumentURL returns the editor URL of a document
func DocumentURL(documentID string) string {
	return fmt.Sprintf(documentURLFormat, documentID)
}
