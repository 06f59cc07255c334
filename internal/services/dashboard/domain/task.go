package domain

import "encoding/json"

// Task is the client's cached copy of a task scoped to one group.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     Timestamp  `json:"due_date"`
	Status      string     `json:"status,omitempty"`
	GroupID     int64      `json:"group_id"`
	AssignedTo  SubjectSet `json:"assigned_to"`
}

// UnmarshalJSON decodes a task and guarantees a non-nil assignee set.
func (t *Task) UnmarshalJSON(data []byte) error {
	type task Task
	var decoded task
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.AssignedTo == nil {
		decoded.AssignedTo = SubjectSet{}
	}
	*t = Task(decoded)
	return nil
}
