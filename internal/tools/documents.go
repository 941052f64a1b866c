package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

var docTypes = []string{api.DocReadme, api.DocSpec, api.DocNote, api.DocMeetingNotes, api.DocOther}

// ListDocumentsTool handles the list_documents MCP tool.
type ListDocumentsTool struct {
	client *api.Client
}

// NewListDocumentsTool creates a ListDocumentsTool with the given client.
func NewListDocumentsTool(c *api.Client) *ListDocumentsTool {
	return &ListDocumentsTool{client: c}
}

func (t *ListDocumentsTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List documents, optionally scoped to a project or document type."),
		mcp.WithString("project_id",
			mcp.Description("Only documents in this project"),
		),
		mcp.WithString("doc_type",
			mcp.Description("Filter by document type"),
			mcp.Enum(docTypes...),
		),
	}
	opts = append(opts, withListArgs()...)
	return mcp.NewTool("list_documents", opts...)
}

func (t *ListDocumentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
		DocType   string `json:"doc_type"`
		listArgs
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	documents, err := t.client.ListDocuments(ctx, api.DocumentFilter{
		ProjectID:   args.ProjectID,
		DocType:     args.DocType,
		ListOptions: api.ListOptions{Limit: args.Limit, Offset: args.Offset},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"documents": documents,
		"count":     len(documents),
	}, nil
}

// GetDocumentTool handles the get_document MCP tool.
type GetDocumentTool struct {
	client *api.Client
}

// NewGetDocumentTool creates a GetDocumentTool with the given client.
func NewGetDocumentTool(c *api.Client) *GetDocumentTool {
	return &GetDocumentTool{client: c}
}

func (t *GetDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("get_document",
		mcp.WithDescription("Fetch a single document by id, including its full content."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id"),
		),
	)
}

func (t *GetDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		DocumentID string `json:"document_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	document, err := t.client.GetDocument(ctx, args.DocumentID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"document": document}, nil
}

// CreateDocumentTool handles the create_document MCP tool.
type CreateDocumentTool struct {
	client *api.Client
}

// NewCreateDocumentTool creates a CreateDocumentTool with the given client.
func NewCreateDocumentTool(c *api.Client) *CreateDocumentTool {
	return &CreateDocumentTool{client: c}
}

func (t *CreateDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("create_document",
		mcp.WithDescription("Create a document (spec, note, meeting minutes) in a project."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project the document belongs to"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Document title"),
			mcp.MinLength(1),
			mcp.MaxLength(300),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Markdown content"),
		),
		mcp.WithString("doc_type",
			mcp.Description("Document type"),
			mcp.DefaultString(api.DocNote),
			mcp.Enum(docTypes...),
		),
	)
}

func (t *CreateDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		DocType   string `json:"doc_type"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	if _, err := t.client.GetProject(ctx, args.ProjectID); err != nil {
		return nil, err
	}

	document, err := t.client.CreateDocument(ctx, api.CreateDocumentInput{
		ProjectID: args.ProjectID,
		Title:     args.Title,
		Content:   args.Content,
		DocType:   args.DocType,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"document": document}, nil
}

// UpdateDocumentTool handles the update_document MCP tool.
type UpdateDocumentTool struct {
	client *api.Client
}

// NewUpdateDocumentTool creates an UpdateDocumentTool with the given client.
func NewUpdateDocumentTool(c *api.Client) *UpdateDocumentTool {
	return &UpdateDocumentTool{client: c}
}

func (t *UpdateDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("update_document",
		mcp.WithDescription("Update a document's title, content, or type. Content is replaced wholesale."),
		mcp.WithString("document_id",
			mcp.Required(),
			mcp.Description("Document id"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.MinLength(1),
			mcp.MaxLength(300),
		),
		mcp.WithString("content",
			mcp.Description("New markdown content"),
		),
		mcp.WithString("doc_type",
			mcp.Description("New document type"),
			mcp.Enum(docTypes...),
		),
	)
}

func (t *UpdateDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		DocumentID string `json:"document_id"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		DocType    string `json:"doc_type"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	raw := req.GetArguments()
	document, err := t.client.UpdateDocument(ctx, args.DocumentID, api.UpdateDocumentInput{
		Title:   optional(raw, "title", args.Title),
		Content: optional(raw, "content", args.Content),
		DocType: optional(raw, "doc_type", args.DocType),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"document": document}, nil
}

// SearchDocumentsTool handles search_documents: substring match on title
// and content. No ranking model — results come back in recency order.
type SearchDocumentsTool struct {
	client *api.Client
}

// NewSearchDocumentsTool creates a SearchDocumentsTool with the given client.
func NewSearchDocumentsTool(c *api.Client) *SearchDocumentsTool {
	return &SearchDocumentsTool{client: c}
}

func (t *SearchDocumentsTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Search documents by title and content (case-insensitive substring match, " +
				"most recently updated first).",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for"),
			mcp.MinLength(2),
		),
		mcp.WithString("project_id",
			mcp.Description("Restrict the search to one project"),
		),
	}
	opts = append(opts, withListArgs()...)
	return mcp.NewTool("search_documents", opts...)
}

func (t *SearchDocumentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		Query     string `json:"query"`
		ProjectID string `json:"project_id"`
		listArgs
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	documents, err := t.client.ListDocuments(ctx, api.DocumentFilter{
		ProjectID:   args.ProjectID,
		Query:       args.Query,
		ListOptions: api.ListOptions{Limit: args.Limit, Offset: args.Offset},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"query":     args.Query,
		"documents": documents,
		"count":     len(documents),
	}, nil
}
