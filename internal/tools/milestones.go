package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

// ListMilestonesTool handles the list_milestones MCP tool.
type ListMilestonesTool struct {
	client *api.Client
}

// NewListMilestonesTool creates a ListMilestonesTool with the given client.
func NewListMilestonesTool(c *api.Client) *ListMilestonesTool {
	return &ListMilestonesTool{client: c}
}

func (t *ListMilestonesTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List a project's milestones ordered by due date."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
		mcp.WithBoolean("pending_only",
			mcp.Description("Only milestones not yet completed"),
			mcp.DefaultBool(false),
		),
	}
	opts = append(opts, withListArgs()...)
	return mcp.NewTool("list_milestones", opts...)
}

func (t *ListMilestonesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID   string `json:"project_id"`
		PendingOnly bool   `json:"pending_only"`
		listArgs
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	milestones, err := t.client.ListMilestones(ctx, api.MilestoneFilter{
		ProjectID:   args.ProjectID,
		Pending:     args.PendingOnly,
		ListOptions: api.ListOptions{Limit: args.Limit, Offset: args.Offset},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"milestones": milestones,
		"count":      len(milestones),
	}, nil
}

// GetMilestoneTool handles the get_milestone MCP tool.
type GetMilestoneTool struct {
	client *api.Client
}

// NewGetMilestoneTool creates a GetMilestoneTool with the given client.
func NewGetMilestoneTool(c *api.Client) *GetMilestoneTool {
	return &GetMilestoneTool{client: c}
}

func (t *GetMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("get_milestone",
		mcp.WithDescription("Fetch a single milestone by id."),
		mcp.WithString("milestone_id",
			mcp.Required(),
			mcp.Description("Milestone id"),
		),
	)
}

func (t *GetMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		MilestoneID string `json:"milestone_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	milestone, err := t.client.GetMilestone(ctx, args.MilestoneID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"milestone": milestone}, nil
}

// CreateMilestoneTool handles the create_milestone MCP tool.
type CreateMilestoneTool struct {
	client *api.Client
}

// NewCreateMilestoneTool creates a CreateMilestoneTool with the given client.
func NewCreateMilestoneTool(c *api.Client) *CreateMilestoneTool {
	return &CreateMilestoneTool{client: c}
}

func (t *CreateMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("create_milestone",
		mcp.WithDescription("Create a dated milestone in a project."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project the milestone belongs to"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Milestone title"),
			mcp.MinLength(1),
			mcp.MaxLength(300),
		),
		mcp.WithString("description",
			mcp.Description("What reaching this milestone means"),
		),
		mcp.WithString("due_date",
			mcp.Description("Target date, YYYY-MM-DD"),
		),
	)
}

func (t *CreateMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID   string `json:"project_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	if _, err := t.client.GetProject(ctx, args.ProjectID); err != nil {
		return nil, err
	}

	milestone, err := t.client.CreateMilestone(ctx, api.CreateMilestoneInput{
		ProjectID:   args.ProjectID,
		Title:       args.Title,
		Description: args.Description,
		DueDate:     args.DueDate,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"milestone": milestone}, nil
}

// UpdateMilestoneTool handles the update_milestone MCP tool.
type UpdateMilestoneTool struct {
	client *api.Client
}

// NewUpdateMilestoneTool creates an UpdateMilestoneTool with the given client.
func NewUpdateMilestoneTool(c *api.Client) *UpdateMilestoneTool {
	return &UpdateMilestoneTool{client: c}
}

func (t *UpdateMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("update_milestone",
		mcp.WithDescription("Update a milestone's title, description, or due date."),
		mcp.WithString("milestone_id",
			mcp.Required(),
			mcp.Description("Milestone id"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.MinLength(1),
			mcp.MaxLength(300),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("due_date",
			mcp.Description("New target date, YYYY-MM-DD"),
		),
	)
}

func (t *UpdateMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		MilestoneID string `json:"milestone_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	raw := req.GetArguments()
	milestone, err := t.client.UpdateMilestone(ctx, args.MilestoneID, api.UpdateMilestoneInput{
		Title:       optional(raw, "title", args.Title),
		Description: optional(raw, "description", args.Description),
		DueDate:     optional(raw, "due_date", args.DueDate),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"milestone": milestone}, nil
}

// CompleteMilestoneTool handles complete_milestone.
type CompleteMilestoneTool struct {
	client *api.Client
}

// NewCompleteMilestoneTool creates a CompleteMilestoneTool with the given client.
func NewCompleteMilestoneTool(c *api.Client) *CompleteMilestoneTool {
	return &CompleteMilestoneTool{client: c}
}

func (t *CompleteMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_milestone",
		mcp.WithDescription("Mark a milestone as completed, recording the completion time."),
		mcp.WithString("milestone_id",
			mcp.Required(),
			mcp.Description("Milestone id"),
		),
	)
}

func (t *CompleteMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		MilestoneID string `json:"milestone_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	milestone, err := t.client.CompleteMilestone(ctx, args.MilestoneID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"milestone": milestone}, nil
}
