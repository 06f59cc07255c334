// Package view derives what the dashboard shows from cache snapshots. Every
// function is pure and safe to call on every render.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"golang.org/x/text/cases"
)

// GroupFilter selects tasks by group. AllGroups disables the filter.
type GroupFilter int64

// AllGroups matches every group.
const AllGroups GroupFilter = 0

// ParseGroupFilter reads "all", "" or a group id.
func ParseGroupFilter(value string) (GroupFilter, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return AllGroups, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return AllGroups, fmt.Errorf("invalid group filter %q", value)
	}
	return GroupFilter(id), nil
}

// String renders the filter the way ParseGroupFilter reads it.
func (f GroupFilter) String() string {
	if f == AllGroups {
		return "all"
	}
	return strconv.FormatInt(int64(f), 10)
}

// VisibleTasks keeps the tasks in a group subject belongs to plus the tasks
// assigned to subject directly. Order is preserved.
func VisibleTasks(groups []domain.Group, tasks []domain.Task, subject string) []domain.Task {
	memberOf := make(map[int64]bool, len(groups))
	for _, group := range groups {
		if group.HasMember(subject) {
			memberOf[group.ID] = true
		}
	}
	visible := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if memberOf[task.GroupID] || (subject != "" && task.AssignedTo.Contains(subject)) {
			visible = append(visible, task)
		}
	}
	return visible
}

// FilteredTasks narrows visible tasks by a case-insensitive substring search
// on the title and a group filter. The search is matched as typed, spaces
// included; an empty search matches everything.
func FilteredTasks(visible []domain.Task, search string, filter GroupFilter) []domain.Task {
	fold := cases.Fold()
	needle := fold.String(search)
	out := make([]domain.Task, 0, len(visible))
	for _, task := range visible {
		if filter != AllGroups && task.GroupID != int64(filter) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(task.Title), needle) {
			continue
		}
		out = append(out, task)
	}
	return out
}

// PendingInvitations keeps invitations still awaiting an answer.
func PendingInvitations(invitations []domain.Invitation) []domain.Invitation {
	out := make([]domain.Invitation, 0, len(invitations))
	for _, invitation := range invitations {
		if invitation.Pending() {
			out = append(out, invitation)
		}
	}
	return out
}

// GroupNameOf returns the cached name of group id, or "Group #<id>".
func GroupNameOf(groups []domain.Group, id int64) string {
	for _, group := range groups {
		if group.ID == id && strings.TrimSpace(group.Name) != "" {
			return group.Name
		}
	}
	return domain.FallbackGroupName(id)
}

// Option is one entry of a group picker.
type Option struct {
	Value int64
	Label string
}

// GroupOptions lists the groups a task can be filed under.
func GroupOptions(groups []domain.Group) []Option {
	out := make([]Option, 0, len(groups))
	for _, group := range groups {
		out = append(out, Option{Value: group.ID, Label: GroupNameOf(groups, group.ID)})
	}
	return out
}

// TaskRow is a task ready for a table.
type TaskRow struct {
	Task      domain.Task
	GroupName string
	Due       string
}

// TaskRows pairs tasks with their group labels.
func TaskRows(groups []domain.Group, tasks []domain.Task) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, task := range tasks {
		due := ""
		if !task.DueDate.IsZero() {
			due = task.DueDate.UTC().Format("2006-01-02 15:04")
		}
		rows = append(rows, TaskRow{Task: task, GroupName: GroupNameOf(groups, task.GroupID), Due: due})
	}
	return rows
}
