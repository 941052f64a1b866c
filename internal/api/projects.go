package api

import (
	"context"
	"net/url"
)

// CreateProjectInput is the payload for CreateProject. Workspace and
// creator are stamped by the client, never taken from the caller.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
}

// UpdateProjectInput carries the mutable project fields. Nil pointers
// mean "leave unchanged".
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
}

// ListProjects returns the caller's projects matching the filter.
func (c *Client) ListProjects(ctx context.Context, f ProjectFilter) ([]Project, error) {
	extra := url.Values{}
	if f.Status != "" {
		extra.Set("status", "eq."+f.Status)
	}
	if f.OrderBy == "" {
		f.OrderBy = "updated_at"
		f.Descending = true
	}
	return listRows[Project](ctx, c, "projects", extra, f.ListOptions)
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	return getOne[Project](ctx, c, "projects", id)
}

// CreateProject inserts a new project.
func (c *Client) CreateProject(ctx context.Context, in CreateProjectInput) (Project, error) {
	status := in.Status
	if status == "" {
		status = ProjectActive
	}
	return createRow[Project](ctx, c, "projects", map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"status":      status,
	})
}

// UpdateProject patches an existing project.
func (c *Client) UpdateProject(ctx context.Context, id string, in UpdateProjectInput) (Project, error) {
	payload := map[string]any{}
	if in.Name != nil {
		payload["name"] = *in.Name
	}
	if in.Description != nil {
		payload["description"] = *in.Description
	}
	if in.Status != nil {
		payload["status"] = *in.Status
	}
	if len(payload) == 0 {
		return Project{}, NewError(KindValidation, "no fields to update")
	}
	return updateRow[Project](ctx, c, "projects", id, payload)
}

// DeleteProject removes a project and, via backend cascades, its children.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.deleteRow(ctx, "projects", id)
}
