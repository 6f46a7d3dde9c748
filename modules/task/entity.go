package task

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the workflow state of a task. There is no transition
// graph: any status may move to any other status.
type Status string

const (
	StatusOpen  Status = "open"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// ParseStatus converts a wire string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOpen, StatusDoing, StatusDone:
		return Status(s), true
	}
	return "", false
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority converts a wire string into a Priority, rejecting unknown values.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// Task is the core domain entity. ID and CreatedAt are immutable after
// creation; UpdatedAt is bumped on every successful mutation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueAt       *time.Time `json:"due_at"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so repository callers can mutate freely.
func (t *Task) Clone() *Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.DueAt != nil {
		d := *t.DueAt
		c.DueAt = &d
	}
	c.Tags = make([]string, len(t.Tags))
	copy(c.Tags, t.Tags)
	return &c
}
