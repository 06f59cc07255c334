package mutation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

// ErrCreateGroupFirst is returned when a task is submitted while the caller
// belongs to no group.
var ErrCreateGroupFirst = errors.New("create a group before adding tasks")

// TaskInput is the editable part of a task as entered in a form. GroupID 0
// means no group was selected.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	GroupID     int64
	AssignedTo  []string
	Status      string
}

// DeleteConfirmation is the first half of a task deletion. Only values
// returned by RequestDeleteTask can be committed.
type DeleteConfirmation struct {
	TaskID int64
	Title  string
	issued bool
}

// Prompt is the question to show before committing.
func (c DeleteConfirmation) Prompt() string {
	if c.Title == "" {
		return fmt.Sprintf("Delete task #%d?", c.TaskID)
	}
	return fmt.Sprintf("Delete task %q?", c.Title)
}

// buildTaskRequest validates input and normalises the due date. It never
// touches the network.
func (p *Pipeline) buildTaskRequest(input TaskInput) (gateway.TaskRequest, error) {
	if len(p.caches.Groups().Items) == 0 {
		return gateway.TaskRequest{}, apperrors.Error{
			Kind:    apperrors.KindClientValidation,
			Message: ErrCreateGroupFirst.Error(),
			Fields:  map[string]string{"group_id": ErrCreateGroupFirst.Error()},
			Err:     ErrCreateGroupFirst,
		}
	}

	fields := map[string]string{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields["title"] = "title is required"
	}
	if input.GroupID <= 0 {
		fields["group_id"] = "select a group"
	}
	var due string
	if strings.TrimSpace(input.DueDate) == "" {
		fields["due_date"] = "due date is required"
	} else if parsed, err := domain.ParseTimestamp(input.DueDate); err != nil {
		fields["due_date"] = "due date must be a valid date"
	} else {
		due = parsed.String()
	}
	if len(fields) > 0 {
		return gateway.TaskRequest{}, apperrors.Validation(fields)
	}

	var assigned []string
	for _, subject := range input.AssignedTo {
		if subject = strings.TrimSpace(subject); subject != "" {
			assigned = append(assigned, subject)
		}
	}
	return gateway.TaskRequest{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		DueDate:     due,
		GroupID:     input.GroupID,
		AssignedTo:  assigned,
		Status:      strings.TrimSpace(input.Status),
	}, nil
}

// CreateTask validates and creates a task, then refreshes tasks.
func (p *Pipeline) CreateTask(ctx context.Context, input TaskInput) (domain.Task, error) {
	req, err := p.buildTaskRequest(input)
	if err != nil {
		return domain.Task{}, err
	}
	done := p.begin(coordinator.ActionCreateTask)
	defer done()

	task, err := p.api.CreateTask(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return task, p.invalidate(ctx, coordinator.ActionCreateTask)
}

// UpdateTask validates and replaces a task, then refreshes tasks.
func (p *Pipeline) UpdateTask(ctx context.Context, id int64, input TaskInput) (domain.Task, error) {
	if id <= 0 {
		return domain.Task{}, apperrors.Validation(map[string]string{"task_id": "select a task"})
	}
	req, err := p.buildTaskRequest(input)
	if err != nil {
		return domain.Task{}, err
	}
	done := p.begin(coordinator.ActionUpdateTask)
	defer done()

	task, err := p.api.UpdateTask(ctx, id, req)
	if err != nil {
		return domain.Task{}, err
	}
	return task, p.invalidate(ctx, coordinator.ActionUpdateTask)
}

// RequestDeleteTask starts a deletion. Nothing is sent until the returned
// confirmation is committed.
func (p *Pipeline) RequestDeleteTask(id int64) (DeleteConfirmation, error) {
	for _, task := range p.caches.Tasks().Items {
		if task.ID == id {
			return DeleteConfirmation{TaskID: id, Title: task.Title, issued: true}, nil
		}
	}
	return DeleteConfirmation{}, apperrors.Validation(map[string]string{"task_id": fmt.Sprintf("task %d is not loaded", id)})
}

// CommitDeleteTask deletes the confirmed task. On success the task leaves
// the cache at once and tasks are refreshed.
func (p *Pipeline) CommitDeleteTask(ctx context.Context, confirmation DeleteConfirmation) error {
	if !confirmation.issued || confirmation.TaskID <= 0 {
		return apperrors.Validation(map[string]string{"task_id": "deletion was not confirmed"})
	}
	done := p.begin(coordinator.ActionDeleteTask)
	defer done()

	if err := p.api.DeleteTask(ctx, confirmation.TaskID); err != nil {
		return err
	}
	p.caches.RemoveTask(confirmation.TaskID)
	return p.invalidate(ctx, coordinator.ActionDeleteTask)
}
