package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakedx6/helios9-mcp/internal/api"
	"github.com/jakedx6/helios9-mcp/internal/auth"
)

func newHandler(t *testing.T, backend http.HandlerFunc) *Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, "h9s_test")
	gate := auth.NewGate("h9s_test", "ws-1", client)
	client.SetScopeSource(gate)
	return NewHandler(client, gate)
}

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func textContents(t *testing.T, contents []mcp.ResourceContents) mcp.TextResourceContents {
	t.Helper()
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected TextResourceContents, got %T", contents[0])
	return text
}

func TestHandle_ProjectsList(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/projects", r.URL.Path)
		assert.Equal(t, "eq.ws-1", r.URL.Query().Get("workspace_id"))
		_ = json.NewEncoder(w).Encode([]api.Project{{ID: "p1", Name: "Launch"}})
	})

	contents, err := handler.Handle(context.Background(), readRequest("helios9://projects"))
	require.NoError(t, err)

	text := textContents(t, contents)
	assert.Equal(t, "helios9://projects", text.URI)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Contains(t, text.Text, "Launch")
}

func TestHandle_ProjectDetail(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.p1", r.URL.Query().Get("id"))
		_ = json.NewEncoder(w).Encode([]api.Project{{ID: "p1", Name: "Launch"}})
	})

	contents, err := handler.Handle(context.Background(), readRequest("helios9://projects/p1"))
	require.NoError(t, err)

	text := textContents(t, contents)
	assert.Contains(t, text.Text, `"id": "p1"`)
}

func TestHandle_ProjectTasks(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/tasks", r.URL.Path)
		assert.Equal(t, "eq.p1", r.URL.Query().Get("project_id"))
		_ = json.NewEncoder(w).Encode([]api.Task{{ID: "t1", Title: "Ship"}})
	})

	contents, err := handler.Handle(context.Background(), readRequest("helios9://projects/p1/tasks"))
	require.NoError(t, err)
	assert.Contains(t, textContents(t, contents).Text, "Ship")
}

func TestHandle_ProjectDocuments(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/documents", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]api.Document{{ID: "d1", Title: "Plan"}})
	})

	contents, err := handler.Handle(context.Background(), readRequest("helios9://projects/p1/documents"))
	require.NoError(t, err)
	assert.Contains(t, textContents(t, contents).Text, "Plan")
}

func TestHandle_UnknownURI(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unknown URI must not reach the backend")
	})

	contents, err := handler.Handle(context.Background(), readRequest("helios9://nonsense"))
	require.NoError(t, err, "failures surface as resources, not protocol errors")

	text := textContents(t, contents)
	assert.Equal(t, "text/plain", text.MIMEType)
	assert.True(t, strings.HasPrefix(text.Text, "Error:"), "got %q", text.Text)
}

func TestHandle_WrongScheme(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("foreign scheme must not reach the backend")
	})

	contents, err := handler.Handle(context.Background(), readRequest("file:///etc/passwd"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain", textContents(t, contents).MIMEType)
}

func TestHandle_MissingProject(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]api.Project{})
	})

	contents, err := handler.Handle(context.Background(), readRequest("helios9://projects/missing"))
	require.NoError(t, err)

	text := textContents(t, contents)
	assert.Equal(t, "text/plain", text.MIMEType)
	assert.Contains(t, text.Text, "not found")
}

func TestHandle_Unauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unauthenticated read must not reach the backend")
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, "")
	gate := auth.NewGate("", "ws-1", client)
	client.SetScopeSource(gate)
	handler := NewHandler(client, gate)

	contents, err := handler.Handle(context.Background(), readRequest("helios9://projects"))
	require.NoError(t, err)

	text := textContents(t, contents)
	assert.Equal(t, "text/plain", text.MIMEType)
	assert.Contains(t, text.Text, "not authenticated")
}

func TestResourceDefinitions(t *testing.T) {
	handler := newHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, "helios9://projects", handler.ProjectsResource().URI)
	assert.Equal(t, "helios9://projects/{id}", handler.ProjectResourceTemplate().URITemplate.Raw())
	assert.Equal(t, "helios9://projects/{id}/tasks", handler.ProjectTasksResourceTemplate().URITemplate.Raw())
	assert.Equal(t, "helios9://projects/{id}/documents", handler.ProjectDocumentsResourceTemplate().URITemplate.Raw())
}
