package api

import (
	"context"
	"net/url"
)

// CreateDocumentInput is the payload for CreateDocument.
type CreateDocumentInput struct {
	ProjectID string
	Title     string
	Content   string
	DocType   string
}

// UpdateDocumentInput carries the mutable fields; nil means unchanged.
type UpdateDocumentInput struct {
	Title   *string
	Content *string
	DocType *string
}

// ListDocuments returns the caller's documents matching the filter.
// When Query is set, it becomes a case-insensitive substring match on
// title and content (backend ilike, no ranking — see SearchDocuments).
func (c *Client) ListDocuments(ctx context.Context, f DocumentFilter) ([]Document, error) {
	extra := url.Values{}
	if f.ProjectID != "" {
		extra.Set("project_id", "eq."+f.ProjectID)
	}
	if f.DocType != "" {
		extra.Set("doc_type", "eq."+f.DocType)
	}
	if f.Query != "" {
		pattern := "*" + f.Query + "*"
		extra.Set("or", "(title.ilike."+pattern+",content.ilike."+pattern+")")
	}
	if f.OrderBy == "" {
		f.OrderBy = "updated_at"
		f.Descending = true
	}
	return listRows[Document](ctx, c, "documents", extra, f.ListOptions)
}

// GetDocument fetches one document by id.
func (c *Client) GetDocument(ctx context.Context, id string) (Document, error) {
	return getOne[Document](ctx, c, "documents", id)
}

// CreateDocument inserts a new document.
func (c *Client) CreateDocument(ctx context.Context, in CreateDocumentInput) (Document, error) {
	docType := in.DocType
	if docType == "" {
		docType = DocNote
	}
	return createRow[Document](ctx, c, "documents", map[string]any{
		"project_id": in.ProjectID,
		"title":      in.Title,
		"content":    in.Content,
		"doc_type":   docType,
	})
}

// UpdateDocument patches an existing document.
func (c *Client) UpdateDocument(ctx context.Context, id string, in UpdateDocumentInput) (Document, error) {
	payload := map[string]any{}
	if in.Title != nil {
		payload["title"] = *in.Title
	}
	if in.Content != nil {
		payload["content"] = *in.Content
	}
	if in.DocType != nil {
		payload["doc_type"] = *in.DocType
	}
	if len(payload) == 0 {
		return Document{}, NewError(KindValidation, "no fields to update")
	}
	return updateRow[Document](ctx, c, "documents", id, payload)
}
