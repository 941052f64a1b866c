package api

import "time"

// Domain entities are remote records owned by the backend. The client
// fetches and mutates them on every call; nothing here has an in-process
// lifecycle. Status and priority values are enforced by tool schemas on
// write and trusted as-is on read.

// Project statuses.
const (
	ProjectActive    = "active"
	ProjectArchived  = "archived"
	ProjectCompleted = "completed"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskInReview   = "in_review"
	TaskDone       = "done"
	TaskArchived   = "archived"
)

// Priorities (tasks and initiatives).
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Initiative statuses.
const (
	InitiativePlanning  = "planning"
	InitiativeActive    = "active"
	InitiativeCompleted = "completed"
	InitiativeCancelled = "cancelled"
)

// Document types.
const (
	DocReadme       = "readme"
	DocSpec         = "spec"
	DocNote         = "note"
	DocMeetingNotes = "meeting_notes"
	DocOther        = "other"
)

// Project is a top-level container for initiatives, tasks, and documents.
type Project struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Initiative groups tasks toward a larger outcome within a project.
type Initiative struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	WorkspaceID string    `json:"workspace_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Task is a unit of work, optionally linked to an initiative.
type Task struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	InitiativeID string    `json:"initiative_id,omitempty"`
	WorkspaceID  string    `json:"workspace_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority,omitempty"`
	AssigneeID   string    `json:"assignee_id,omitempty"`
	DueDate      string    `json:"due_date,omitempty"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Document is project knowledge: specs, notes, meeting minutes.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	WorkspaceID string    `json:"workspace_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	DocType     string    `json:"doc_type"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Milestone is a dated checkpoint within a project.
type Milestone struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	WorkspaceID string     `json:"workspace_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty"`
}

// Conversation is a logged AI agent session attached to a project.
type Conversation struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	WorkspaceID string    `json:"workspace_id"`
	AgentName   string    `json:"agent_name,omitempty"`
	Summary     string    `json:"summary"`
	Messages    string    `json:"messages,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Identity is what the backend reports for a verified credential.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
}

// Scope is the identity slice the client injects into every request.
type Scope struct {
	SubjectID   string
	WorkspaceID string
}

// ListOptions are the common list knobs every list endpoint accepts.
type ListOptions struct {
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

// ProjectFilter narrows ListProjects.
type ProjectFilter struct {
	Status string
	ListOptions
}

// InitiativeFilter narrows ListInitiatives.
type InitiativeFilter struct {
	ProjectID string
	Status    string
	ListOptions
}

// TaskFilter narrows ListTasks.
type TaskFilter struct {
	ProjectID    string
	InitiativeID string
	Status       string
	Priority     string
	AssigneeID   string
	ListOptions
}

// DocumentFilter narrows ListDocuments.
type DocumentFilter struct {
	ProjectID string
	DocType   string
	Query     string
	ListOptions
}

// MilestoneFilter narrows ListMilestones.
type MilestoneFilter struct {
	ProjectID string
	Pending   bool
	ListOptions
}

// ConversationFilter narrows ListConversations.
type ConversationFilter struct {
	ProjectID string
	AgentName string
	ListOptions
}
