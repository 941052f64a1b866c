package api

import (
	"context"
	"net/url"
	"time"
)

// CreateMilestoneInput is the payload for CreateMilestone.
type CreateMilestoneInput struct {
	ProjectID   string
	Title       string
	Description string
	DueDate     string
}

// UpdateMilestoneInput carries the mutable fields; nil means unchanged.
type UpdateMilestoneInput struct {
	Title       *string
	Description *string
	DueDate     *string
}

// ListMilestones returns the caller's milestones matching the filter.
func (c *Client) ListMilestones(ctx context.Context, f MilestoneFilter) ([]Milestone, error) {
	extra := url.Values{}
	if f.ProjectID != "" {
		extra.Set("project_id", "eq."+f.ProjectID)
	}
	if f.Pending {
		extra.Set("completed", "eq.false")
	}
	if f.OrderBy == "" {
		f.OrderBy = "due_date"
	}
	return listRows[Milestone](ctx, c, "milestones", extra, f.ListOptions)
}

// GetMilestone fetches one milestone by id.
func (c *Client) GetMilestone(ctx context.Context, id string) (Milestone, error) {
	return getOne[Milestone](ctx, c, "milestones", id)
}

// CreateMilestone inserts a new milestone.
func (c *Client) CreateMilestone(ctx context.Context, in CreateMilestoneInput) (Milestone, error) {
	payload := map[string]any{
		"project_id":  in.ProjectID,
		"title":       in.Title,
		"description": in.Description,
		"completed":   false,
	}
	if in.DueDate != "" {
		payload["due_date"] = in.DueDate
	}
	return createRow[Milestone](ctx, c, "milestones", payload)
}

// UpdateMilestone patches an existing milestone.
func (c *Client) UpdateMilestone(ctx context.Context, id string, in UpdateMilestoneInput) (Milestone, error) {
	payload := map[string]any{}
	if in.Title != nil {
		payload["title"] = *in.Title
	}
	if in.Description != nil {
		payload["description"] = *in.Description
	}
	if in.DueDate != nil {
		payload["due_date"] = *in.DueDate
	}
	if len(payload) == 0 {
		return Milestone{}, NewError(KindValidation, "no fields to update")
	}
	return updateRow[Milestone](ctx, c, "milestones", id, payload)
}

// CompleteMilestone marks a milestone done with the completion time.
func (c *Client) CompleteMilestone(ctx context.Context, id string) (Milestone, error) {
	now := time.Now().UTC()
	return updateRow[Milestone](ctx, c, "milestones", id, map[string]any{
		"completed":    true,
		"completed_at": now.Format(time.RFC3339),
	})
}
