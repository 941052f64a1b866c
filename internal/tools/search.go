package tools

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

// SearchProjectContentTool handles search_project_content: one query
// across a project's documents and tasks. Scoring is a plain term-count
// heuristic — there is no persisted relevance model.
type SearchProjectContentTool struct {
	client *api.Client
}

// NewSearchProjectContentTool creates the tool with the given client.
func NewSearchProjectContentTool(c *api.Client) *SearchProjectContentTool {
	return &SearchProjectContentTool{client: c}
}

func (t *SearchProjectContentTool) Definition() mcp.Tool {
	return mcp.NewTool("search_project_content",
		mcp.WithDescription(
			"Search a project's documents and tasks with one query. Results "+
				"are merged and ordered by how often the query terms appear.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for"),
			mcp.MinLength(2),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results"),
			mcp.DefaultNumber(20),
			mcp.Min(1),
			mcp.Max(100),
		),
	)
}

// searchHit is one merged result row.
type searchHit struct {
	Kind    string `json:"kind"` // "document" or "task"
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	Score   int    `json:"score"`
}

func (t *SearchProjectContentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
		Query     string `json:"query"`
		Limit     int    `json:"limit"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	documents, err := t.client.ListDocuments(ctx, api.DocumentFilter{
		ProjectID: args.ProjectID,
		Query:     args.Query,
	})
	if err != nil {
		return nil, err
	}
	tasks, err := t.client.ListTasks(ctx, api.TaskFilter{ProjectID: args.ProjectID})
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(args.Query))
	var hits []searchHit
	for _, d := range documents {
		score := termCount(terms, d.Title+" "+d.Content)
		hits = append(hits, searchHit{
			Kind:    "document",
			ID:      d.ID,
			Title:   d.Title,
			Snippet: snippet(d.Content, terms),
			Score:   score,
		})
	}
	for _, task := range tasks {
		score := termCount(terms, task.Title+" "+task.Description)
		if score == 0 {
			continue
		}
		hits = append(hits, searchHit{
			Kind:    "task",
			ID:      task.ID,
			Title:   task.Title,
			Snippet: snippet(task.Description, terms),
			Score:   score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if args.Limit > 0 && len(hits) > args.Limit {
		hits = hits[:args.Limit]
	}
	return map[string]any{
		"query":   args.Query,
		"results": hits,
		"count":   len(hits),
	}, nil
}

// termCount counts query term occurrences in text, case-insensitive.
func termCount(terms []string, text string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, term := range terms {
		total += strings.Count(lower, term)
	}
	return total
}

// snippet returns the text around the first term occurrence, capped to
// keep responses small.
func snippet(text string, terms []string) string {
	const window = 160
	lower := strings.ToLower(text)
	idx := -1
	for _, term := range terms {
		if i := strings.Index(lower, term); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}
	if idx < 0 {
		if len(text) > window {
			return text[:runeBoundary(text, window)] + "…"
		}
		return text
	}
	start := runeBoundary(text, idx-window/2)
	end := runeBoundary(text, start+window)
	out := text[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out += "…"
	}
	return out
}

// runeBoundary clamps i into [0, len(s)] and backs it up to the nearest
// rune start so slicing never splits a multi-byte rune.
func runeBoundary(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// ProjectAnalyticsTool handles get_project_analytics: counts derived
// from the live task and milestone lists on every call. Nothing is
// precomputed or persisted.
type ProjectAnalyticsTool struct {
	client *api.Client
}

// NewProjectAnalyticsTool creates the tool with the given client.
func NewProjectAnalyticsTool(c *api.Client) *ProjectAnalyticsTool {
	return &ProjectAnalyticsTool{client: c}
}

func (t *ProjectAnalyticsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_analytics",
		mcp.WithDescription(
			"Summarize a project's progress: task counts by status and "+
				"priority, completion ratio, and milestone progress.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}

func (t *ProjectAnalyticsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
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
	tasks, err := t.client.ListTasks(ctx, api.TaskFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}
	milestones, err := t.client.ListMilestones(ctx, api.MilestoneFilter{ProjectID: project.ID})
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	byPriority := map[string]int{}
	done := 0
	for _, task := range tasks {
		byStatus[task.Status]++
		byPriority[task.Priority]++
		if task.Status == api.TaskDone {
			done++
		}
	}
	completion := 0.0
	if len(tasks) > 0 {
		completion = float64(done) / float64(len(tasks))
	}

	completedMilestones := 0
	for _, m := range milestones {
		if m.Completed {
			completedMilestones++
		}
	}

	return map[string]any{
		"project_id":        project.ID,
		"project_name":      project.Name,
		"total_tasks":       len(tasks),
		"tasks_by_status":   byStatus,
		"tasks_by_priority": byPriority,
		"completion_ratio":  completion,
		"milestones": map[string]any{
			"total":     len(milestones),
			"completed": completedMilestones,
		},
	}, nil
}
