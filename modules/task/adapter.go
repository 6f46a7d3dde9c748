package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort is the interface through which other modules reach the task
// domain. Expected failures are returned as *Error values.
type TaskPort interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*TaskView, error)
	Get(ctx context.Context, id string) (*TaskView, error)
	List(ctx context.Context, req *ListTasksRequest) (*ListTasksReply, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*TaskView, error)
	Delete(ctx context.Context, id string) error
}

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the task module's ServiceContainer received via
// SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// Create creates a new task via the create service.
func (a *taskAdapter) Create(ctx context.Context, req *CreateTaskRequest) (*TaskView, error) {
	var reply TaskReply
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, req, &reply,
	); err != nil {
		return nil, fmt.Errorf("create service call failed: %w", err)
	}
	if reply.Error != nil {
		return nil, reply.Error.toError()
	}
	return reply.Task, nil
}

// Get retrieves a task by ID via the get service.
func (a *taskAdapter) Get(ctx context.Context, id string) (*TaskView, error) {
	req := GetTaskRequest{ID: id}
	var reply TaskReply
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &reply,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	if reply.Error != nil {
		return nil, reply.Error.toError()
	}
	return reply.Task, nil
}

// List retrieves one task page via the list service.
func (a *taskAdapter) List(ctx context.Context, req *ListTasksRequest) (*ListTasksReply, error) {
	var reply ListTasksReply
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, req, &reply,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	if reply.Error != nil {
		return nil, reply.Error.toError()
	}
	return &reply, nil
}

// Update applies a sparse patch via the update service.
func (a *taskAdapter) Update(ctx context.Context, req *UpdateTaskRequest) (*TaskView, error) {
	var reply TaskReply
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update", json.Marshal, json.Unmarshal, req, &reply,
	); err != nil {
		return nil, fmt.Errorf("update service call failed: %w", err)
	}
	if reply.Error != nil {
		return nil, reply.Error.toError()
	}
	return reply.Task, nil
}

// Delete removes a task via the delete service.
func (a *taskAdapter) Delete(ctx context.Context, id string) error {
	req := DeleteTaskRequest{ID: id}
	var reply DeleteTaskReply
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &reply,
	); err != nil {
		return fmt.Errorf("delete service call failed: %w", err)
	}
	if reply.Error != nil {
		return reply.Error.toError()
	}
	return nil
}
