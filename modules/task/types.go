package task

import "time"

// CreateTaskRequest is the request for creating a task. Status is not
// accepted: new tasks always start open.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// GetTaskRequest is the request for fetching a task by ID.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// ListTasksRequest is the request for listing tasks with pagination and an
// optional case-insensitive title/description filter.
type ListTasksRequest struct {
	Page  int32  `json:"page"`
	Size  int32  `json:"size"`
	Query string `json:"q,omitempty"`
}

// UpdateTaskRequest is a sparse field map: only supplied keys are applied.
// Title, Status and Priority replace when present; Description, DueAt and
// Tags are presence-aware so an explicit null (or empty tags) clears the
// stored value while an absent key keeps it. ID and CreatedAt are not part
// of the patch and can never be changed.
type UpdateTaskRequest struct {
	ID          string              `json:"id"`
	Title       *string             `json:"title,omitempty"`
	Status      *string             `json:"status,omitempty"`
	Priority    *string             `json:"priority,omitempty"`
	Description Optional[string]    `json:"description,omitzero"`
	DueAt       Optional[time.Time] `json:"dueAt,omitzero"`
	Tags        Optional[[]string]  `json:"tags,omitzero"`
}

// DeleteTaskRequest is the request for deleting a task by ID.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// TaskView is the external representation of a task. Field names use the
// wire casing; the mapping from the stored record is lossless and stable.
type TaskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueAt       *time.Time `json:"dueAt"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTaskView renders a persisted record into its wire representation.
func NewTaskView(t *Task) *TaskView {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &TaskView{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueAt:       t.DueAt,
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TaskReply is the reply for single-task operations. Exactly one of Task and
// Error is set.
type TaskReply struct {
	Task  *TaskView  `json:"task,omitempty"`
	Error *ErrorInfo `json:"error,omitempty"`
}

// ListTasksReply is the reply for the list operation. Total counts every
// record matching the filter, ignoring pagination.
type ListTasksReply struct {
	Items []TaskView `json:"items"`
	Page  int32      `json:"page"`
	Size  int32      `json:"size"`
	Total int64      `json:"total"`
	Error *ErrorInfo `json:"error,omitempty"`
}

// DeleteTaskReply is the reply for the delete operation.
type DeleteTaskReply struct {
	Deleted bool       `json:"deleted"`
	Error   *ErrorInfo `json:"error,omitempty"`
}
