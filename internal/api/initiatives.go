package api

import (
	"context"
	"net/url"
)

// CreateInitiativeInput is the payload for CreateInitiative.
type CreateInitiativeInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      string
	Priority    string
}

// UpdateInitiativeInput carries the mutable fields; nil means unchanged.
type UpdateInitiativeInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// ListInitiatives returns the caller's initiatives matching the filter.
func (c *Client) ListInitiatives(ctx context.Context, f InitiativeFilter) ([]Initiative, error) {
	extra := url.Values{}
	if f.ProjectID != "" {
		extra.Set("project_id", "eq."+f.ProjectID)
	}
	if f.Status != "" {
		extra.Set("status", "eq."+f.Status)
	}
	if f.OrderBy == "" {
		f.OrderBy = "updated_at"
		f.Descending = true
	}
	return listRows[Initiative](ctx, c, "initiatives", extra, f.ListOptions)
}

// GetInitiative fetches one initiative by id.
func (c *Client) GetInitiative(ctx context.Context, id string) (Initiative, error) {
	return getOne[Initiative](ctx, c, "initiatives", id)
}

// CreateInitiative inserts a new initiative.
func (c *Client) CreateInitiative(ctx context.Context, in CreateInitiativeInput) (Initiative, error) {
	status := in.Status
	if status == "" {
		status = InitiativePlanning
	}
	payload := map[string]any{
		"project_id":  in.ProjectID,
		"title":       in.Title,
		"description": in.Description,
		"status":      status,
	}
	if in.Priority != "" {
		payload["priority"] = in.Priority
	}
	return createRow[Initiative](ctx, c, "initiatives", payload)
}

// UpdateInitiative patches an existing initiative.
func (c *Client) UpdateInitiative(ctx context.Context, id string, in UpdateInitiativeInput) (Initiative, error) {
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
	if len(payload) == 0 {
		return Initiative{}, NewError(KindValidation, "no fields to update")
	}
	return updateRow[Initiative](ctx, c, "initiatives", id, payload)
}
