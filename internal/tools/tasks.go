package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

// taskStatuses and taskPriorities are the enum sets shared by the task
// tool schemas.
var (
	taskStatuses   = []string{api.TaskTodo, api.TaskInProgress, api.TaskInReview, api.TaskDone, api.TaskArchived}
	taskPriorities = []string{api.PriorityLow, api.PriorityMedium, api.PriorityHigh, api.PriorityUrgent}
)

// ListTasksTool handles the list_tasks MCP tool.
type ListTasksTool struct {
	client *api.Client
}

// NewListTasksTool creates a ListTasksTool with the given client.
func NewListTasksTool(c *api.Client) *ListTasksTool {
	return &ListTasksTool{client: c}
}

func (t *ListTasksTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"List tasks in your workspace, most recently updated first. " +
				"Filter by project, initiative, status, priority, or assignee.",
		),
		mcp.WithString("project_id",
			mcp.Description("Only tasks in this project"),
		),
		mcp.WithString("initiative_id",
			mcp.Description("Only tasks linked to this initiative"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by task status"),
			mcp.Enum(taskStatuses...),
		),
		mcp.WithString("priority",
			mcp.Description("Filter by priority"),
			mcp.Enum(taskPriorities...),
		),
		mcp.WithString("assignee_id",
			mcp.Description("Only tasks assigned to this user"),
		),
	}
	opts = append(opts, withListArgs()...)
	return mcp.NewTool("list_tasks", opts...)
}

func (t *ListTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID    string `json:"project_id"`
		InitiativeID string `json:"initiative_id"`
		Status       string `json:"status"`
		Priority     string `json:"priority"`
		AssigneeID   string `json:"assignee_id"`
		listArgs
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	tasks, err := t.client.ListTasks(ctx, api.TaskFilter{
		ProjectID:    args.ProjectID,
		InitiativeID: args.InitiativeID,
		Status:       args.Status,
		Priority:     args.Priority,
		AssigneeID:   args.AssigneeID,
		ListOptions:  api.ListOptions{Limit: args.Limit, Offset: args.Offset},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"tasks": tasks,
		"count": len(tasks),
	}, nil
}

// GetTaskTool handles the get_task MCP tool.
type GetTaskTool struct {
	client *api.Client
}

// NewGetTaskTool creates a GetTaskTool with the given client.
func NewGetTaskTool(c *api.Client) *GetTaskTool {
	return &GetTaskTool{client: c}
}

func (t *GetTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Fetch a single task by id."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task id"),
		),
	)
}

func (t *GetTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		TaskID string `json:"task_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	task, err := t.client.GetTask(ctx, args.TaskID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"task": task}, nil
}

// CreateTaskTool handles the create_task MCP tool.
type CreateTaskTool struct {
	client *api.Client
}

// NewCreateTaskTool creates a CreateTaskTool with the given client.
func NewCreateTaskTool(c *api.Client) *CreateTaskTool {
	return &CreateTaskTool{client: c}
}

func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a task in a project, optionally linked to an initiative."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project the task belongs to"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short task title"),
			mcp.MinLength(1),
			mcp.MaxLength(500),
		),
		mcp.WithString("description",
			mcp.Description("Details, acceptance criteria, links"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status"),
			mcp.DefaultString(api.TaskTodo),
			mcp.Enum(taskStatuses...),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority"),
			mcp.DefaultString(api.PriorityMedium),
			mcp.Enum(taskPriorities...),
		),
		mcp.WithString("initiative_id",
			mcp.Description("Initiative to link the task to"),
		),
		mcp.WithString("assignee_id",
			mcp.Description("User the task is assigned to"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date, YYYY-MM-DD"),
		),
	)
}

func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID    string `json:"project_id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		Status       string `json:"status"`
		Priority     string `json:"priority"`
		InitiativeID string `json:"initiative_id"`
		AssigneeID   string `json:"assignee_id"`
		DueDate      string `json:"due_date"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	// Ownership check: the project must exist in the caller's workspace
	// before the write is attempted.
	if _, err := t.client.GetProject(ctx, args.ProjectID); err != nil {
		return nil, err
	}

	task, err := t.client.CreateTask(ctx, api.CreateTaskInput{
		ProjectID:    args.ProjectID,
		InitiativeID: args.InitiativeID,
		Title:        args.Title,
		Description:  args.Description,
		Status:       args.Status,
		Priority:     args.Priority,
		AssigneeID:   args.AssigneeID,
		DueDate:      args.DueDate,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"task": task}, nil
}

// UpdateTaskTool handles the update_task MCP tool.
type UpdateTaskTool struct {
	client *api.Client
}

// NewUpdateTaskTool creates an UpdateTaskTool with the given client.
func NewUpdateTaskTool(c *api.Client) *UpdateTaskTool {
	return &UpdateTaskTool{client: c}
}

func (t *UpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription("Update any of a task's fields."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task id"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.MinLength(1),
			mcp.MaxLength(500),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("status",
			mcp.Description("New status"),
			mcp.Enum(taskStatuses...),
		),
		mcp.WithString("priority",
			mcp.Description("New priority"),
			mcp.Enum(taskPriorities...),
		),
		mcp.WithString("assignee_id",
			mcp.Description("New assignee"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date, YYYY-MM-DD"),
		),
	)
}

func (t *UpdateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		TaskID      string `json:"task_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		Priority    string `json:"priority"`
		AssigneeID  string `json:"assignee_id"`
		DueDate     string `json:"due_date"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	raw := req.GetArguments()
	task, err := t.client.UpdateTask(ctx, args.TaskID, api.UpdateTaskInput{
		Title:       optional(raw, "title", args.Title),
		Description: optional(raw, "description", args.Description),
		Status:      optional(raw, "status", args.Status),
		Priority:    optional(raw, "priority", args.Priority),
		AssigneeID:  optional(raw, "assignee_id", args.AssigneeID),
		DueDate:     optional(raw, "due_date", args.DueDate),
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"task": task}, nil
}

// UpdateTaskStatusTool handles update_task_status, the most common task
// mutation, kept as its own narrow tool so agents don't have to reach
// for the full update_task schema.
type UpdateTaskStatusTool struct {
	client *api.Client
}

// NewUpdateTaskStatusTool creates an UpdateTaskStatusTool with the given client.
func NewUpdateTaskStatusTool(c *api.Client) *UpdateTaskStatusTool {
	return &UpdateTaskStatusTool{client: c}
}

func (t *UpdateTaskStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task_status",
		mcp.WithDescription("Move a task to a new status."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task id"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status"),
			mcp.Enum(taskStatuses...),
		),
	)
}

func (t *UpdateTaskStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		TaskID string `json:"task_id"`
		Status string `json:"status"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	task, err := t.client.UpdateTask(ctx, args.TaskID, api.UpdateTaskInput{Status: &args.Status})
	if err != nil {
		return nil, err
	}
	return map[string]any{"task": task}, nil
}

// NextTaskTool handles get_next_task: the highest-priority open task in
// a project, a convenience read for "what should I work on".
type NextTaskTool struct {
	client *api.Client
}

// NewNextTaskTool creates a NextTaskTool with the given client.
func NewNextTaskTool(c *api.Client) *NextTaskTool {
	return &NextTaskTool{client: c}
}

func (t *NextTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("get_next_task",
		mcp.WithDescription(
			"Suggest the next task to work on in a project: the "+
				"highest-priority task that is still todo.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

func (t *NextTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	open, err := t.client.ListTasks(ctx, api.TaskFilter{
		ProjectID: args.ProjectID,
		Status:    api.TaskTodo,
	})
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return map[string]any{
			"task":    nil,
			"message": "No open tasks in this project.",
		}, nil
	}

	best := open[0]
	for _, task := range open[1:] {
		if priorityRank(task.Priority) > priorityRank(best.Priority) {
			best = task
		}
	}
	return map[string]any{"task": best}, nil
}

// priorityRank orders priorities for get_next_task. Unknown values sort
// below low so backend drift can't shadow real priorities.
func priorityRank(p string) int {
	switch p {
	case api.PriorityUrgent:
		return 4
	case api.PriorityHigh:
		return 3
	case api.PriorityMedium:
		return 2
	case api.PriorityLow:
		return 1
	}
	return 0
}
