package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

// --- Test helpers ---

// fakeBackend is an in-memory PostgREST stand-in: generic eq. filters,
// limit/offset, POST inserts, PATCH merges, DELETE removes.
type fakeBackend struct {
	srv *httptest.Server

	mu     sync.Mutex
	tables map[string][]map[string]any
	nextID int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{tables: map[string][]map[string]any{}}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) seed(table string, rows ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tables[table] = append(b.tables[table], rows...)
}

// rows returns a copy of a table's current contents.
func (b *fakeBackend) rows(table string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, len(b.tables[table]))
	copy(out, b.tables[table])
	return out
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	q := r.URL.Query()

	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		var matched []map[string]any
		for _, row := range b.tables[table] {
			if rowMatches(row, q) {
				matched = append(matched, row)
			}
		}
		if offset, _ := strconv.Atoi(q.Get("offset")); offset > 0 {
			if offset > len(matched) {
				offset = len(matched)
			}
			matched = matched[offset:]
		}
		if limit, _ := strconv.Atoi(q.Get("limit")); limit > 0 && len(matched) > limit {
			matched = matched[:limit]
		}
		if matched == nil {
			matched = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(matched)

	case http.MethodPost:
		var row map[string]any
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, ok := row["id"]; !ok {
			b.nextID++
			row["id"] = fmt.Sprintf("gen-%d", b.nextID)
		}
		b.tables[table] = append(b.tables[table], row)
		_ = json.NewEncoder(w).Encode([]map[string]any{row})

	case http.MethodPatch:
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var matched []map[string]any
		for _, row := range b.tables[table] {
			if rowMatches(row, q) {
				for k, v := range patch {
					row[k] = v
				}
				matched = append(matched, row)
			}
		}
		if matched == nil {
			matched = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(matched)

	case http.MethodDelete:
		var kept []map[string]any
		for _, row := range b.tables[table] {
			if !rowMatches(row, q) {
				kept = append(kept, row)
			}
		}
		b.tables[table] = kept
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// rowMatches applies the eq. filters in the query to one row.
func rowMatches(row map[string]any, q url.Values) bool {
	for key, vals := range q {
		switch key {
		case "order", "limit", "offset", "select", "or":
			continue
		}
		val := vals[0]
		if !strings.HasPrefix(val, "eq.") {
			continue
		}
		if fmt.Sprint(row[key]) != strings.TrimPrefix(val, "eq.") {
			return false
		}
	}
	return true
}

// testScope pins the client to one workspace identity.
type testScope struct{}

func (testScope) Scope() (api.Scope, bool) {
	return api.Scope{SubjectID: "user-1", WorkspaceID: "ws-1"}, true
}

// setupClient builds a client wired to a fresh fake backend.
func setupClient(t *testing.T) (*api.Client, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend(t)
	client := api.NewClient(backend.srv.URL, "h9s_test")
	client.SetScopeSource(testScope{})
	return client, backend
}

func callWith(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// asMap asserts a handler result is the expected map shape.
func asMap(t *testing.T, result any) map[string]any {
	t.Helper()
	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("result should be map[string]any, got %T", result)
	}
	return m
}

func seedProject(b *fakeBackend, id, name string) {
	b.seed("projects", map[string]any{
		"id":           id,
		"workspace_id": "ws-1",
		"name":         name,
		"status":       "active",
	})
}

// --- ListProjectsTool ---

func TestListProjectsTool_Handle_Success(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")
	seedProject(backend, "p2", "Migration")

	tool := NewListProjectsTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	if m["count"] != 2 {
		t.Errorf("count = %v, want 2", m["count"])
	}
}

func TestListProjectsTool_Handle_StatusFilter(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")
	backend.seed("projects", map[string]any{
		"id": "p2", "workspace_id": "ws-1", "name": "Old", "status": "archived",
	})

	tool := NewListProjectsTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"status": "archived",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	if m["count"] != 1 {
		t.Errorf("count = %v, want 1 archived project", m["count"])
	}
}

func TestListProjectsTool_Handle_OtherWorkspaceInvisible(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("projects", map[string]any{
		"id": "p-foreign", "workspace_id": "ws-other", "name": "Secret", "status": "active",
	})

	tool := NewListProjectsTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	if m["count"] != 0 {
		t.Errorf("count = %v, want 0 — foreign workspace rows must not leak", m["count"])
	}
}

// --- GetProjectTool ---

func TestGetProjectTool_Handle_NotFound(t *testing.T) {
	client, _ := setupClient(t)

	tool := NewGetProjectTool(client)
	_, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "missing",
	}))
	if err == nil {
		t.Fatal("expected error for missing project")
	}
	if !api.IsNotFound(err) {
		t.Errorf("error should be NotFound, got kind %q", api.KindOf(err))
	}
}

// --- CreateProjectTool ---

func TestCreateProjectTool_Handle_Success(t *testing.T) {
	client, backend := setupClient(t)

	tool := NewCreateProjectTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"name":        "Launch",
		"description": "Q4 launch work",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	project, ok := m["project"].(api.Project)
	if !ok {
		t.Fatalf("result project has type %T", m["project"])
	}
	if project.Name != "Launch" {
		t.Errorf("project name = %q, want Launch", project.Name)
	}
	if m["message"] == "" {
		t.Error("result should carry a follow-up message")
	}

	rows := backend.rows("projects")
	if len(rows) != 1 {
		t.Fatalf("backend should hold 1 project, got %d", len(rows))
	}
	if rows[0]["workspace_id"] != "ws-1" {
		t.Errorf("stored workspace_id = %v, want ws-1", rows[0]["workspace_id"])
	}
	if rows[0]["created_by"] != "user-1" {
		t.Errorf("stored created_by = %v, want user-1", rows[0]["created_by"])
	}
}

// --- UpdateProjectTool ---

func TestUpdateProjectTool_Handle_OnlyProvidedFields(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")

	tool := NewUpdateProjectTool(client)
	_, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
		"status":     "completed",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	rows := backend.rows("projects")
	if rows[0]["status"] != "completed" {
		t.Errorf("status = %v, want completed", rows[0]["status"])
	}
	if rows[0]["name"] != "Launch" {
		t.Errorf("name = %v — absent fields must stay untouched", rows[0]["name"])
	}
}

// --- DeleteProjectTool ---

func TestDeleteProjectTool_Handle_Success(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")

	tool := NewDeleteProjectTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	if m["deleted"] != true {
		t.Error("result should report deleted: true")
	}
	if len(backend.rows("projects")) != 0 {
		t.Error("project should be gone from the backend")
	}
}

func TestDeleteProjectTool_Handle_MissingProject(t *testing.T) {
	client, _ := setupClient(t)

	tool := NewDeleteProjectTool(client)
	_, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "missing",
	}))
	if !api.IsNotFound(err) {
		t.Errorf("deleting a missing project should be NotFound, got %v", err)
	}
}

// --- ProjectContextTool ---

func TestProjectContextTool_Handle_AssemblesContext(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")
	backend.seed("initiatives", map[string]any{
		"id": "i1", "workspace_id": "ws-1", "project_id": "p1", "title": "Beta", "status": "active",
	})
	backend.seed("tasks", map[string]any{
		"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "title": "Ship it", "status": "todo",
	})
	backend.seed("milestones",
		map[string]any{"id": "m1", "workspace_id": "ws-1", "project_id": "p1", "title": "GA", "completed": false},
		map[string]any{"id": "m2", "workspace_id": "ws-1", "project_id": "p1", "title": "Alpha", "completed": true},
	)
	backend.seed("documents", map[string]any{
		"id": "d1", "workspace_id": "ws-1", "project_id": "p1", "title": "Plan", "doc_type": "spec",
	})

	tool := NewProjectContextTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	for _, key := range []string{"project", "initiatives", "tasks", "pending_milestones", "recent_documents"} {
		if _, ok := m[key]; !ok {
			t.Errorf("context result missing %q", key)
		}
	}
	milestones, ok := m["pending_milestones"].([]api.Milestone)
	if !ok {
		t.Fatalf("pending_milestones has type %T", m["pending_milestones"])
	}
	if len(milestones) != 1 || milestones[0].ID != "m1" {
		t.Errorf("pending_milestones = %v, want only the incomplete one", milestones)
	}
}

// --- CreateTaskTool ---

func TestCreateTaskTool_Handle_Defaults(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")

	tool := NewCreateTaskTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
		"title":      "Write docs",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	task, ok := m["task"].(api.Task)
	if !ok {
		t.Fatalf("result task has type %T", m["task"])
	}
	if task.Status != api.TaskTodo {
		t.Errorf("status = %q, want todo default", task.Status)
	}
	if task.Priority != api.PriorityMedium {
		t.Errorf("priority = %q, want medium default", task.Priority)
	}
}

func TestCreateTaskTool_Handle_ProjectMissing(t *testing.T) {
	client, backend := setupClient(t)

	tool := NewCreateTaskTool(client)
	_, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "missing",
		"title":      "Orphan",
	}))
	if !api.IsNotFound(err) {
		t.Errorf("task into a missing project should be NotFound, got %v", err)
	}
	if len(backend.rows("tasks")) != 0 {
		t.Error("no task row should be written when the project check fails")
	}
}

// --- UpdateTaskStatusTool ---

func TestUpdateTaskStatusTool_Handle(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("tasks", map[string]any{
		"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "title": "Ship", "status": "todo",
	})

	tool := NewUpdateTaskStatusTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"task_id": "t1",
		"status":  "done",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	task := m["task"].(api.Task)
	if task.Status != api.TaskDone {
		t.Errorf("status = %q, want done", task.Status)
	}
}

// --- NextTaskTool ---

func TestNextTaskTool_Handle_PicksHighestPriority(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("tasks",
		map[string]any{"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "title": "Low", "status": "todo", "priority": "low"},
		map[string]any{"id": "t2", "workspace_id": "ws-1", "project_id": "p1", "title": "Urgent", "status": "todo", "priority": "urgent"},
		map[string]any{"id": "t3", "workspace_id": "ws-1", "project_id": "p1", "title": "DoneUrgent", "status": "done", "priority": "urgent"},
	)

	tool := NewNextTaskTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	task, ok := m["task"].(api.Task)
	if !ok {
		t.Fatalf("task has type %T", m["task"])
	}
	if task.ID != "t2" {
		t.Errorf("next task = %s, want t2 (urgent todo)", task.ID)
	}
}

func TestNextTaskTool_Handle_NoOpenTasks(t *testing.T) {
	client, _ := setupClient(t)

	tool := NewNextTaskTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	if m["task"] != nil {
		t.Errorf("task = %v, want nil", m["task"])
	}
	if m["message"] == "" {
		t.Error("empty result should explain itself")
	}
}

// --- priorityRank ---

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		priority string
		want     int
	}{
		{"urgent", 4},
		{"high", 3},
		{"medium", 2},
		{"low", 1},
		{"", 0},
		{"sev0", 0},
	}

	for _, tt := range tests {
		if got := priorityRank(tt.priority); got != tt.want {
			t.Errorf("priorityRank(%q) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

// --- GetInitiativeTool ---

func TestGetInitiativeTool_Handle_IncludesLinkedTasks(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("initiatives", map[string]any{
		"id": "i1", "workspace_id": "ws-1", "project_id": "p1", "title": "Beta", "status": "active",
	})
	backend.seed("tasks",
		map[string]any{"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "initiative_id": "i1", "title": "Linked", "status": "todo"},
		map[string]any{"id": "t2", "workspace_id": "ws-1", "project_id": "p1", "title": "Unlinked", "status": "todo"},
	)

	tool := NewGetInitiativeTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"initiative_id": "i1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	tasks, ok := m["tasks"].([]api.Task)
	if !ok {
		t.Fatalf("tasks has type %T", m["tasks"])
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("tasks = %v, want only the linked one", tasks)
	}
}

// --- LinkTaskTool ---

func TestLinkTaskTool_Handle_MissingInitiative(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("tasks", map[string]any{
		"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "title": "Ship", "status": "todo",
	})

	tool := NewLinkTaskTool(client)
	_, err := tool.Handle(context.Background(), callWith(map[string]any{
		"task_id":       "t1",
		"initiative_id": "missing",
	}))
	if !api.IsNotFound(err) {
		t.Errorf("linking to a missing initiative should be NotFound, got %v", err)
	}

	rows := backend.rows("tasks")
	if _, linked := rows[0]["initiative_id"]; linked {
		t.Error("task must not be rewritten when the initiative check fails")
	}
}

func TestLinkTaskTool_Handle_Unlink(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("tasks", map[string]any{
		"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "initiative_id": "i1", "title": "Ship", "status": "todo",
	})

	tool := NewLinkTaskTool(client)
	_, err := tool.Handle(context.Background(), callWith(map[string]any{
		"task_id":       "t1",
		"initiative_id": "",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	rows := backend.rows("tasks")
	if rows[0]["initiative_id"] != "" {
		t.Errorf("initiative_id = %v, want cleared", rows[0]["initiative_id"])
	}
}

// --- CreateDocumentTool ---

func TestCreateDocumentTool_Handle_DefaultType(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")

	tool := NewCreateDocumentTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
		"title":      "Scratch",
		"content":    "Working notes.",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	doc := m["document"].(api.Document)
	if doc.DocType != api.DocNote {
		t.Errorf("doc_type = %q, want note default", doc.DocType)
	}
}

// --- SearchDocumentsTool ---

func TestSearchDocumentsTool_Handle_SendsSearchFilter(t *testing.T) {
	var gotOr string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOr = r.URL.Query().Get("or")
		_ = json.NewEncoder(w).Encode([]api.Document{{ID: "d1", Title: "Auth spec"}})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, "h9s_test")
	client.SetScopeSource(testScope{})

	tool := NewSearchDocumentsTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"query": "auth",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if gotOr != "(title.ilike.*auth*,content.ilike.*auth*)" {
		t.Errorf("or filter = %q", gotOr)
	}
	m := asMap(t, result)
	if m["count"] != 1 {
		t.Errorf("count = %v, want 1", m["count"])
	}
}

// --- CompleteMilestoneTool ---

func TestCompleteMilestoneTool_Handle(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("milestones", map[string]any{
		"id": "m1", "workspace_id": "ws-1", "project_id": "p1", "title": "GA", "completed": false,
	})

	tool := NewCompleteMilestoneTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"milestone_id": "m1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	milestone := m["milestone"].(api.Milestone)
	if !milestone.Completed {
		t.Error("milestone should be completed")
	}
	if milestone.CompletedAt == nil {
		t.Error("completion time should be recorded")
	}
}

// --- LogConversationTool ---

func TestLogConversationTool_Handle(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")

	tool := NewLogConversationTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
		"summary":    "Planned the beta rollout and split the work into tasks.",
		"agent_name": "planner",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	conv := m["conversation"].(api.Conversation)
	if conv.AgentName != "planner" {
		t.Errorf("agent_name = %q", conv.AgentName)
	}

	rows := backend.rows("ai_conversations")
	if len(rows) != 1 {
		t.Fatalf("backend should hold 1 conversation, got %d", len(rows))
	}
	if rows[0]["created_by"] != "user-1" {
		t.Errorf("stored created_by = %v, want user-1", rows[0]["created_by"])
	}
}

// --- ConversationContextTool ---

func TestConversationContextTool_Handle_SummariesOnly(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("ai_conversations", map[string]any{
		"id":           "c1",
		"workspace_id": "ws-1",
		"project_id":   "p1",
		"agent_name":   "planner",
		"summary":      "Decided on the rollout order.",
		"messages":     `[{"role":"user","content":"secret transcript"}]`,
		"created_at":   "2026-08-30T10:00:00Z",
	})

	tool := NewConversationContextTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if strings.Contains(string(data), "secret transcript") {
		t.Error("context result must not include raw transcripts")
	}
	if !strings.Contains(string(data), "Decided on the rollout order.") {
		t.Error("context result should include the summary")
	}
}

// --- SearchProjectContentTool ---

func TestSearchProjectContentTool_Handle_MergesAndRanks(t *testing.T) {
	client, backend := setupClient(t)
	backend.seed("documents", map[string]any{
		"id": "d1", "workspace_id": "ws-1", "project_id": "p1", "doc_type": "spec",
		"title":   "Auth design",
		"content": "auth auth auth flows and token refresh",
	})
	backend.seed("tasks",
		map[string]any{
			"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "status": "todo",
			"title": "Implement auth middleware", "description": "wire the auth gate",
		},
		map[string]any{
			"id": "t2", "workspace_id": "ws-1", "project_id": "p1", "status": "todo",
			"title": "Unrelated chore", "description": "bump dependencies",
		},
	)

	tool := NewSearchProjectContentTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
		"query":      "auth",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	hits, ok := m["results"].([]searchHit)
	if !ok {
		t.Fatalf("results has type %T", m["results"])
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2 (unrelated task dropped)", len(hits))
	}
	if hits[0].Kind != "document" {
		t.Errorf("top hit = %s, want the document with more matches", hits[0].Kind)
	}
	for _, h := range hits {
		if h.Score <= 0 {
			t.Errorf("hit %s has non-positive score %d", h.ID, h.Score)
		}
	}
}

func TestTermCount(t *testing.T) {
	tests := []struct {
		terms []string
		text  string
		want  int
	}{
		{[]string{"auth"}, "Auth AUTH auth", 3},
		{[]string{"auth", "token"}, "auth token token", 3},
		{[]string{"none"}, "nothing here", 0},
	}

	for _, tt := range tests {
		if got := termCount(tt.terms, tt.text); got != tt.want {
			t.Errorf("termCount(%v, %q) = %d, want %d", tt.terms, tt.text, got, tt.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("x", 300) + " target " + strings.Repeat("y", 300)

	got := snippet(long, []string{"target"})
	if !strings.Contains(got, "target") {
		t.Error("snippet should contain the matched term")
	}
	if len(got) > 200 {
		t.Errorf("snippet too long: %d bytes", len(got))
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Error("mid-text snippet should be elided on both sides")
	}

	if got := snippet("short text", []string{"absent"}); got != "short text" {
		t.Errorf("no-match snippet = %q, want full short text", got)
	}
}

func TestSnippet_MultiByteTextStaysValidUTF8(t *testing.T) {
	// "é" is 2 bytes, so the 160-byte window lands mid-rune unless the
	// cut points are aligned.
	accented := strings.Repeat("é", 200)

	got := snippet(accented, []string{"absent"})
	if !utf8.ValidString(got) {
		t.Errorf("truncated snippet is not valid UTF-8: %q", got)
	}

	withMatch := strings.Repeat("é", 100) + " target " + strings.Repeat("ü", 100)
	got = snippet(withMatch, []string{"target"})
	if !utf8.ValidString(got) {
		t.Errorf("windowed snippet is not valid UTF-8: %q", got)
	}
	if !strings.Contains(got, "target") {
		t.Error("snippet should still contain the matched term")
	}
}

func TestRuneBoundary(t *testing.T) {
	s := "aé" // boundaries at 0, 1, 3

	tests := []struct {
		i    int
		want int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{2, 1}, // mid-rune, backs up
		{3, 3},
		{9, 3},
	}

	for _, tt := range tests {
		if got := runeBoundary(s, tt.i); got != tt.want {
			t.Errorf("runeBoundary(%q, %d) = %d, want %d", s, tt.i, got, tt.want)
		}
	}
}

// --- ProjectAnalyticsTool ---

func TestProjectAnalyticsTool_Handle(t *testing.T) {
	client, backend := setupClient(t)
	seedProject(backend, "p1", "Launch")
	backend.seed("tasks",
		map[string]any{"id": "t1", "workspace_id": "ws-1", "project_id": "p1", "title": "A", "status": "done", "priority": "high"},
		map[string]any{"id": "t2", "workspace_id": "ws-1", "project_id": "p1", "title": "B", "status": "todo", "priority": "high"},
		map[string]any{"id": "t3", "workspace_id": "ws-1", "project_id": "p1", "title": "C", "status": "todo", "priority": "low"},
		map[string]any{"id": "t4", "workspace_id": "ws-1", "project_id": "p1", "title": "D", "status": "done", "priority": "medium"},
	)
	backend.seed("milestones",
		map[string]any{"id": "m1", "workspace_id": "ws-1", "project_id": "p1", "title": "GA", "completed": true},
		map[string]any{"id": "m2", "workspace_id": "ws-1", "project_id": "p1", "title": "Beta", "completed": false},
	)

	tool := NewProjectAnalyticsTool(client)
	result, err := tool.Handle(context.Background(), callWith(map[string]any{
		"project_id": "p1",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	m := asMap(t, result)
	if m["total_tasks"] != 4 {
		t.Errorf("total_tasks = %v, want 4", m["total_tasks"])
	}
	byStatus := m["tasks_by_status"].(map[string]int)
	if byStatus["done"] != 2 || byStatus["todo"] != 2 {
		t.Errorf("tasks_by_status = %v", byStatus)
	}
	byPriority := m["tasks_by_priority"].(map[string]int)
	if byPriority["high"] != 2 {
		t.Errorf("tasks_by_priority = %v", byPriority)
	}
	if m["completion_ratio"] != 0.5 {
		t.Errorf("completion_ratio = %v, want 0.5", m["completion_ratio"])
	}
	milestones := m["milestones"].(map[string]any)
	if milestones["total"] != 2 || milestones["completed"] != 1 {
		t.Errorf("milestones = %v", milestones)
	}
}
