package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
)

// TaskRequest is the create/update task body. DueDate is already in the
// canonical RFC 3339 UTC form.
type TaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	GroupID     int64    `json:"group_id"`
	AssignedTo  []string `json:"assigned_to,omitempty"`
	Status      string   `json:"status,omitempty"`
}

type tasksEnvelope struct {
	Tasks []domain.Task `json:"tasks"`
}

type taskEnvelope struct {
	Task domain.Task `json:"task"`
}

func taskPath(id int64) string {
	return "/api/tasks/" + strconv.FormatInt(id, 10)
}

// ListTasks returns every task the server exposes to the caller.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var resp tasksEnvelope
	if err := c.do(ctx, call{name: "tasks.list", method: http.MethodGet, path: "/api/tasks/", out: &resp, sessionBound: true}); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		return []domain.Task{}, nil
	}
	return resp.Tasks, nil
}

// CreateTask creates a task inside a group.
func (c *Client) CreateTask(ctx context.Context, req TaskRequest) (domain.Task, error) {
	var resp taskEnvelope
	if err := c.do(ctx, call{name: "tasks.create", method: http.MethodPost, path: "/api/tasks/", body: req, out: &resp, sessionBound: true}); err != nil {
		return domain.Task{}, err
	}
	return resp.Task, nil
}

// UpdateTask replaces a task's editable fields.
func (c *Client) UpdateTask(ctx context.Context, id int64, req TaskRequest) (domain.Task, error) {
	var resp taskEnvelope
	if err := c.do(ctx, call{name: "tasks.update", method: http.MethodPut, path: taskPath(id), body: req, out: &resp, sessionBound: true}); err != nil {
		return domain.Task{}, err
	}
	return resp.Task, nil
}

// DeleteTask permanently removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, call{name: "tasks.delete", method: http.MethodDelete, path: taskPath(id), sessionBound: true})
}
