package docs

import (
	"context"
	"fmt"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// Client wraps the Google Docs API service
type Client struct {
	service *docs.Service
}

// NewClient creates a Docs client. The options carry the shared
// authenticated HTTP client built at startup.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}
	return &Client{service: service}, nil
}

// GetDocument retrieves a document by ID
func (c *Client) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	doc, err := c.service.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// CreateDocument creates an empty document with the given title
func (c *Client) CreateDocument(ctx context.Context, title string) (*docs.Document, error) {
	doc, err := c.service.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document %q: %w", title, err)
	}
	return doc, nil
}

// InsertText inserts text at a body index. Index 1 is the start of the body.
func (c *Client) InsertText(ctx context.Context, documentID, text string, index int64) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Text:     text,
			Location: &docs.Location{Index: index},
		},
	}})
}

// AppendText inserts text at the end of the document body
func (c *Client) AppendText(ctx context.Context, documentID, text string) (*docs.BatchUpdateDocumentResponse, error) {
	return c.BatchUpdate(ctx, documentID, []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Text:                 text,
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
		},
	}})
}

// BatchUpdate applies a list of Docs API requests atomically
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	resp, err := c.service.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	return resp, nil
}
