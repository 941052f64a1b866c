// Package resources implements the MCP resource endpoints of the gateway.
//
// Resources are read-only, URI-addressed views over the same backend
// reads the tools use. The helios9:// namespace is fixed and parsed by
// simple pattern match — no business logic lives here, only routing.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
	"github.com/jakedx6/helios9-mcp/internal/auth"
)

// Handler serves the helios9:// resource namespace.
type Handler struct {
	client *api.Client
	gate   *auth.Gate
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(client *api.Client, gate *auth.Gate) *Handler {
	return &Handler{client: client, gate: gate}
}

// ProjectsResource returns the definition for the project list view.
func (h *Handler) ProjectsResource() mcp.Resource {
	return mcp.NewResource(
		"helios9://projects",
		"Workspace Projects",
		mcp.WithResourceDescription("All projects in the authenticated workspace"),
		mcp.WithMIMEType("application/json"),
	)
}

// ProjectResourceTemplate returns the definition for a single project view.
func (h *Handler) ProjectResourceTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"helios9://projects/{id}",
		"Project Detail",
		mcp.WithTemplateDescription("A single project by id"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// ProjectTasksResourceTemplate returns the definition for a project's tasks.
func (h *Handler) ProjectTasksResourceTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"helios9://projects/{id}/tasks",
		"Project Tasks",
		mcp.WithTemplateDescription("All tasks of a project"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// ProjectDocumentsResourceTemplate returns the definition for a project's documents.
func (h *Handler) ProjectDocumentsResourceTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"helios9://projects/{id}/documents",
		"Project Documents",
		mcp.WithTemplateDescription("All documents of a project"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// Handle serves any URI in the helios9:// namespace. Reads are gated the
// same way tool calls are; failures come back as a text/plain resource
// rather than a protocol error.
func (h *Handler) Handle(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI

	if _, err := h.gate.EnsureAuthenticated(ctx); err != nil {
		return errorResource(uri, "not authenticated"), nil
	}

	value, err := h.resolve(ctx, uri)
	if err != nil {
		return errorResource(uri, publicError(err)), nil
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// resolve pattern-matches the URI onto the backing read.
func (h *Handler) resolve(ctx context.Context, uri string) (any, error) {
	rest, ok := strings.CutPrefix(uri, "helios9://")
	if !ok {
		return nil, fmt.Errorf("unsupported resource scheme in %q", uri)
	}

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "projects":
		return h.client.ListProjects(ctx, api.ProjectFilter{})
	case len(parts) == 2 && parts[0] == "projects":
		return h.client.GetProject(ctx, parts[1])
	case len(parts) == 3 && parts[0] == "projects" && parts[2] == "tasks":
		return h.client.ListTasks(ctx, api.TaskFilter{ProjectID: parts[1]})
	case len(parts) == 3 && parts[0] == "projects" && parts[2] == "documents":
		return h.client.ListDocuments(ctx, api.DocumentFilter{ProjectID: parts[1]})
	}
	return nil, fmt.Errorf("unknown resource %q", uri)
}

// publicError keeps resource errors to a single classified line.
func publicError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// errorResource returns a resource carrying an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
