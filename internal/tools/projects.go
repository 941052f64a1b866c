package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

// ListProjectsTool handles the list_projects MCP tool.
type ListProjectsTool struct {
	client *api.Client
}

// NewListProjectsTool creates a ListProjectsTool with the given client.
func NewListProjectsTool(c *api.Client) *ListProjectsTool {
	return &ListProjectsTool{client: c}
}

// Definition returns the MCP tool definition for registration.
func (t *ListProjectsTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"List the projects in your workspace, most recently updated first. " +
				"Optionally filter by status.",
		),
		mcp.WithString("status",
			mcp.Description("Filter by project status"),
			mcp.Enum(api.ProjectActive, api.ProjectArchived, api.ProjectCompleted),
		),
	}
	opts = append(opts, withListArgs()...)
	return mcp.NewTool("list_projects", opts...)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		Status string `json:"status"`
		listArgs
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	projects, err := t.client.ListProjects(ctx, api.ProjectFilter{
		Status:      args.Status,
		ListOptions: api.ListOptions{Limit: args.Limit, Offset: args.Offset},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"projects": projects,
		"count":    len(projects),
	}, nil
}

// GetProjectTool handles the get_project MCP tool.
type GetProjectTool struct {
	client *api.Client
}

// NewGetProjectTool creates a GetProjectTool with the given client.
func NewGetProjectTool(c *api.Client) *GetProjectTool {
	return &GetProjectTool{client: c}
}

func (t *GetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Fetch a single project by id."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

func (t *GetProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	project, err := t.client.GetProject(ctx, args.ProjectID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"project": project}, nil
}

// CreateProjectTool handles the create_project MCP tool.
type CreateProjectTool struct {
	client *api.Client
}

// NewCreateProjectTool creates a CreateProjectTool with the given client.
func NewCreateProjectTool(c *api.Client) *CreateProjectTool {
	return &CreateProjectTool{client: c}
}

func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription(
			"Create a new project in your workspace. The project becomes the "+
				"container for initiatives, tasks, documents, and milestones.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
			mcp.MinLength(1),
			mcp.MaxLength(200),
		),
		mcp.WithString("description",
			mcp.Description("What the project is about"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status"),
			mcp.DefaultString(api.ProjectActive),
			mcp.Enum(api.ProjectActive, api.ProjectArchived, api.ProjectCompleted),
		),
	)
}

func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	project, err := t.client.CreateProject(ctx, api.CreateProjectInput{
		Name:        args.Name,
		Description: args.Description,
		Status:      args.Status,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"project": project,
		"message": "Project created. Use create_task or create_initiative to start planning work.",
	}, nil
}

// UpdateProjectTool handles the update_project MCP tool.
type UpdateProjectTool struct {
	client *api.Client
}

// NewUpdateProjectTool creates an UpdateProjectTool with the given client.
func NewUpdateProjectTool(c *api.Client) *UpdateProjectTool {
	return &UpdateProjectTool{client: c}
}

func (t *UpdateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("update_project",
		mcp.WithDescription("Update a project's name, description, or status."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
		mcp.WithString("name",
			mcp.Description("New project name"),
			mcp.MinLength(1),
			mcp.MaxLength(200),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("status",
			mcp.Description("New status"),
			mcp.Enum(api.ProjectActive, api.ProjectArchived, api.ProjectCompleted),
		),
	)
}

func (t *UpdateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID   string `json:"project_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	raw := req.GetArguments()
	project, err := t.client.UpdateProject(ctx, args.ProjectID, api.UpdateProjectInput{
		Name:        optional(raw, "name", args.Name),
		Description: optional(raw, "description", args.Description),
		Status:      optional(raw, "status", args.Status),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"project": project}, nil
}

// DeleteProjectTool handles the delete_project MCP tool.
type DeleteProjectTool struct {
	client *api.Client
}

// NewDeleteProjectTool creates a DeleteProjectTool with the given client.
func NewDeleteProjectTool(c *api.Client) *DeleteProjectTool {
	return &DeleteProjectTool{client: c}
}

func (t *DeleteProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription(
			"Delete a project and everything in it. This cannot be undone — "+
				"confirm with the user before calling.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

func (t *DeleteProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	// Verify existence first so a bad id reads as NotFound, not a silent no-op.
	if _, err := t.client.GetProject(ctx, args.ProjectID); err != nil {
		return nil, err
	}
	if err := t.client.DeleteProject(ctx, args.ProjectID); err != nil {
		return nil, err
	}
	return map[string]any{
		"deleted":    true,
		"project_id": args.ProjectID,
	}, nil
}

// ProjectContextTool handles the get_project_context MCP tool: a single
// call that assembles the project plus its open work for session priming.
type ProjectContextTool struct {
	client *api.Client
}

// NewProjectContextTool creates a ProjectContextTool with the given client.
func NewProjectContextTool(c *api.Client) *ProjectContextTool {
	return &ProjectContextTool{client: c}
}

func (t *ProjectContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_context",
		mcp.WithDescription(
			"Fetch a project together with its initiatives, open tasks, "+
				"pending milestones, and recent documents in one call. "+
				"Use this at the start of a session to orient yourself.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

func (t *ProjectContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	// Ownership check first; child reads are ordered after it.
	project, err := t.client.GetProject(ctx, args.ProjectID)
	if err != nil {
		return nil, err
	}

	initiatives, err := t.client.ListInitiatives(ctx, api.InitiativeFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}
	openTasks, err := t.client.ListTasks(ctx, api.TaskFilter{
		ProjectID:   project.ID,
		ListOptions: api.ListOptions{Limit: 50},
	})
	if err != nil {
		return nil, err
	}
	milestones, err := t.client.ListMilestones(ctx, api.MilestoneFilter{ProjectID: project.ID, Pending: true})
	if err != nil {
		return nil, err
	}
	documents, err := t.client.ListDocuments(ctx, api.DocumentFilter{
		ProjectID:   project.ID,
		ListOptions: api.ListOptions{Limit: 10},
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"project":            project,
		"initiatives":        initiatives,
		"tasks":              openTasks,
		"pending_milestones": milestones,
		"recent_documents":   documents,
	}, nil
}
