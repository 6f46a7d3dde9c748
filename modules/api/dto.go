package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/oliverkarst/TaskMgr-VibeCode-ChatGPT5/modules/task"
)

// Problem is the error payload returned by every failing endpoint.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func newProblem(status int, title, detail string) Problem {
	return Problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// problemFromError maps domain error kinds to HTTP problems. Unknown errors
// become opaque 500s so internals never leak to clients.
func problemFromError(err error) Problem {
	var domainErr *task.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case task.KindValidation:
			return newProblem(fiber.StatusBadRequest, "Validation Failed", domainErr.Detail)
		case task.KindInvalidArgument:
			return newProblem(fiber.StatusBadRequest, "Invalid Argument", domainErr.Detail)
		case task.KindNotFound:
			return newProblem(fiber.StatusNotFound, "Not Found", "task not found")
		}
	}
	return newProblem(fiber.StatusInternalServerError, "Internal Server Error", "internal server error")
}

// HealthResponse is the HTTP response for the health check.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ListTasksResponse is the HTTP response for listing tasks.
type ListTasksResponse struct {
	Items []task.TaskView `json:"items"`
	Page  int32           `json:"page"`
	Size  int32           `json:"size"`
	Total int64           `json:"total"`
}
