package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/oliverkarst/TaskMgr-VibeCode-ChatGPT5/modules/task"
)

const (
	defaultPage = 1
	defaultSize = 20
)

// health handles GET /health.
func (m *APIModule) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// createTask handles POST /tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			newProblem(fiber.StatusBadRequest, "Bad Request", "invalid request body"))
	}

	created, err := m.taskPort.Create(c.Context(), &req)
	if err != nil {
		p := problemFromError(err)
		return c.Status(p.Status).JSON(p)
	}

	c.Location("/tasks/" + created.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// getTask handles GET /tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	view, err := m.taskPort.Get(c.Context(), c.Params("id"))
	if err != nil {
		p := problemFromError(err)
		return c.Status(p.Status).JSON(p)
	}
	return c.JSON(view)
}

// listTasks handles GET /tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	page, err := queryInt32(c, "page", defaultPage)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			newProblem(fiber.StatusBadRequest, "Invalid Argument", err.Error()))
	}
	size, err := queryInt32(c, "size", defaultSize)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			newProblem(fiber.StatusBadRequest, "Invalid Argument", err.Error()))
	}

	reply, err := m.taskPort.List(c.Context(), &task.ListTasksRequest{
		Page:  page,
		Size:  size,
		Query: c.Query("q"),
	})
	if err != nil {
		p := problemFromError(err)
		return c.Status(p.Status).JSON(p)
	}

	items := reply.Items
	if items == nil {
		items = []task.TaskView{}
	}
	return c.JSON(ListTasksResponse{
		Items: items,
		Page:  reply.Page,
		Size:  reply.Size,
		Total: reply.Total,
	})
}

// updateTask handles PATCH /tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			newProblem(fiber.StatusBadRequest, "Bad Request", "invalid request body"))
	}
	req.ID = c.Params("id")

	updated, err := m.taskPort.Update(c.Context(), &req)
	if err != nil {
		p := problemFromError(err)
		return c.Status(p.Status).JSON(p)
	}
	return c.JSON(updated)
}

// deleteTask handles DELETE /tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	if err := m.taskPort.Delete(c.Context(), c.Params("id")); err != nil {
		p := problemFromError(err)
		return c.Status(p.Status).JSON(p)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// queryInt32 parses an integer query parameter, falling back to def when the
// parameter is absent. A non-numeric or out-of-range value is an error, not a
// silent default.
func queryInt32(c *fiber.Ctx, name string, def int32) (int32, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer; got %q", name, raw)
	}
	return int32(v), nil
}
