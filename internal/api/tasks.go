package api

import (
	"context"
	"net/url"
)

// CreateTaskInput is the payload for CreateTask.
type CreateTaskInput struct {
	ProjectID    string
	InitiativeID string
	Title        string
	Description  string
	Status       string
	Priority     string
	AssigneeID   string
	DueDate      string
}

// UpdateTaskInput carries the mutable task fields; nil means unchanged.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	AssigneeID   *string
	DueDate      *string
	InitiativeID *string
}

// ListTasks returns the caller's tasks matching the filter.
func (c *Client) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	extra := url.Values{}
	if f.ProjectID != "" {
		extra.Set("project_id", "eq."+f.ProjectID)
	}
	if f.InitiativeID != "" {
		extra.Set("initiative_id", "eq."+f.InitiativeID)
	}
	if f.Status != "" {
		extra.Set("status", "eq."+f.Status)
	}
	if f.Priority != "" {
		extra.Set("priority", "eq."+f.Priority)
	}
	if f.AssigneeID != "" {
		extra.Set("assignee_id", "eq."+f.AssigneeID)
	}
	if f.OrderBy == "" {
		f.OrderBy = "updated_at"
		f.Descending = true
	}
	return listRows[Task](ctx, c, "tasks", extra, f.ListOptions)
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	return getOne[Task](ctx, c, "tasks", id)
}

// CreateTask inserts a new task.
func (c *Client) CreateTask(ctx context.Context, in CreateTaskInput) (Task, error) {
	status := in.Status
	if status == "" {
		status = TaskTodo
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	payload := map[string]any{
		"project_id":  in.ProjectID,
		"title":       in.Title,
		"description": in.Description,
		"status":      status,
		"priority":    priority,
	}
	if in.InitiativeID != "" {
		payload["initiative_id"] = in.InitiativeID
	}
	if in.AssigneeID != "" {
		payload["assignee_id"] = in.AssigneeID
	}
	if in.DueDate != "" {
		payload["due_date"] = in.DueDate
	}
	return createRow[Task](ctx, c, "tasks", payload)
}

// UpdateTask patches an existing task.
func (c *Client) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (Task, error) {
	payload := map[string]any{}
	if in.Title != nil {
		payload["title"] = *in.Title
	}
	if in.Description != nil {
		payload["description"] = *in.Description
	}
	if in.Status != nil {
		payload["status"] = *in.Status
	}
	if in.Priority != nil {
		payload["priority"] = *in.Priority
	}
	if in.AssigneeID != nil {
		payload["assignee_id"] = *in.AssigneeID
	}
	if in.DueDate != nil {
		payload["due_date"] = *in.DueDate
	}
	if in.InitiativeID != nil {
		payload["initiative_id"] = *in.InitiativeID
	}
	if len(payload) == 0 {
		return Task{}, NewError(KindValidation, "no fields to update")
	}
	return updateRow[Task](ctx, c, "tasks", id, payload)
}
