package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

var initiativeStatuses = []string{
	api.InitiativePlanning, api.InitiativeActive, api.InitiativeCompleted, api.InitiativeCancelled,
}

// ListInitiativesTool handles the list_initiatives MCP tool.
type ListInitiativesTool struct {
	client *api.Client
}

// NewListInitiativesTool creates a ListInitiativesTool with the given client.
func NewListInitiativesTool(c *api.Client) *ListInitiativesTool {
	return &ListInitiativesTool{client: c}
}

func (t *ListInitiativesTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List initiatives, optionally scoped to a project or status."),
		mcp.WithString("project_id",
			mcp.Description("Only initiatives in this project"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by initiative status"),
			mcp.Enum(initiativeStatuses...),
		),
	}
	opts = append(opts, withListArgs()...)
	return mcp.NewTool("list_initiatives", opts...)
}

func (t *ListInitiativesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
		Status    string `json:"status"`
		listArgs
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	initiatives, err := t.client.ListInitiatives(ctx, api.InitiativeFilter{
		ProjectID:   args.ProjectID,
		Status:      args.Status,
		ListOptions: api.ListOptions{Limit: args.Limit, Offset: args.Offset},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"initiatives": initiatives,
		"count":       len(initiatives),
	}, nil
}

// GetInitiativeTool handles the get_initiative MCP tool.
type GetInitiativeTool struct {
	client *api.Client
}

// NewGetInitiativeTool creates a GetInitiativeTool with the given client.
func NewGetInitiativeTool(c *api.Client) *GetInitiativeTool {
	return &GetInitiativeTool{client: c}
}

func (t *GetInitiativeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_initiative",
		mcp.WithDescription("Fetch a single initiative by id, with its linked tasks."),
		mcp.WithString("initiative_id",
			mcp.Required(),
			mcp.Description("Initiative id"),
		),
	)
}

func (t *GetInitiativeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		InitiativeID string `json:"initiative_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	initiative, err := t.client.GetInitiative(ctx, args.InitiativeID)
	if err != nil {
		return nil, err
	}
	tasks, err := t.client.ListTasks(ctx, api.TaskFilter{InitiativeID: initiative.ID})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"initiative": initiative,
		"tasks":      tasks,
	}, nil
}

// CreateInitiativeTool handles the create_initiative MCP tool.
type CreateInitiativeTool struct {
	client *api.Client
}

// NewCreateInitiativeTool creates a CreateInitiativeTool with the given client.
func NewCreateInitiativeTool(c *api.Client) *CreateInitiativeTool {
	return &CreateInitiativeTool{client: c}
}

func (t *CreateInitiativeTool) Definition() mcp.Tool {
	return mcp.NewTool("create_initiative",
		mcp.WithDescription("Create an initiative: a named outcome grouping tasks within a project."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project the initiative belongs to"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Initiative title"),
			mcp.MinLength(1),
			mcp.MaxLength(300),
		),
		mcp.WithString("description",
			mcp.Description("Goal and scope of the initiative"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status"),
			mcp.DefaultString(api.InitiativePlanning),
			mcp.Enum(initiativeStatuses...),
		),
		mcp.WithString("priority",
			mcp.Description("Initiative priority"),
			mcp.Enum(taskPriorities...),
		),
	)
}

func (t *CreateInitiativeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID   string `json:"project_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		Priority    string `json:"priority"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	if _, err := t.client.GetProject(ctx, args.ProjectID); err != nil {
		return nil, err
	}

	initiative, err := t.client.CreateInitiative(ctx, api.CreateInitiativeInput{
		ProjectID:   args.ProjectID,
		Title:       args.Title,
		Description: args.Description,
		Status:      args.Status,
		Priority:    args.Priority,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"initiative": initiative}, nil
}

// UpdateInitiativeTool handles the update_initiative MCP tool.
type UpdateInitiativeTool struct {
	client *api.Client
}

// NewUpdateInitiativeTool creates an UpdateInitiativeTool with the given client.
func NewUpdateInitiativeTool(c *api.Client) *UpdateInitiativeTool {
	return &UpdateInitiativeTool{client: c}
}

func (t *UpdateInitiativeTool) Definition() mcp.Tool {
	return mcp.NewTool("update_initiative",
		mcp.WithDescription("Update an initiative's title, description, status, or priority."),
		mcp.WithString("initiative_id",
			mcp.Required(),
			mcp.Description("Initiative id"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.MinLength(1),
			mcp.MaxLength(300),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("status",
			mcp.Description("New status"),
			mcp.Enum(initiativeStatuses...),
		),
		mcp.WithString("priority",
			mcp.Description("New priority"),
			mcp.Enum(taskPriorities...),
		),
	)
}

func (t *UpdateInitiativeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		InitiativeID string `json:"initiative_id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Status       string `json:"status"`
		Priority     string `json:"priority"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	raw := req.GetArguments()
	initiative, err := t.client.UpdateInitiative(ctx, args.InitiativeID, api.UpdateInitiativeInput{
		Title:       optional(raw, "title", args.Title),
		Description: optional(raw, "description", args.Description),
		Status:      optional(raw, "status", args.Status),
		Priority:    optional(raw, "priority", args.Priority),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"initiative": initiative}, nil
}

// LinkTaskTool handles link_task_to_initiative.
type LinkTaskTool struct {
	client *api.Client
}

// NewLinkTaskTool creates a LinkTaskTool with the given client.
func NewLinkTaskTool(c *api.Client) *LinkTaskTool {
	return &LinkTaskTool{client: c}
}

func (t *LinkTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("link_task_to_initiative",
		mcp.WithDescription("Link an existing task to an initiative (or unlink with an empty initiative_id)."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task id"),
		),
		mcp.WithString("initiative_id",
			mcp.Required(),
			mcp.Description("Initiative id, or empty string to unlink"),
		),
	)
}

func (t *LinkTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		TaskID       string `json:"task_id"`
		InitiativeID string `json:"initiative_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	// Verify the initiative exists before rewriting the link.
	if args.InitiativeID != "" {
		if _, err := t.client.GetInitiative(ctx, args.InitiativeID); err != nil {
			return nil, err
		}
	}

	task, err := t.client.UpdateTask(ctx, args.TaskID, api.UpdateTaskInput{InitiativeID: &args.InitiativeID})
	if err != nil {
		return nil, err
	}
	return map[string]any{"task": task}, nil
}
