package app

import (
	"context"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/resource"
	"github.com/louisbranch/culater/internal/services/dashboard/view"
)

// Snapshot is everything a render needs, read at one moment.
type Snapshot struct {
	Session     domain.Session
	Groups      resource.Cache[domain.Group]
	Tasks       resource.Cache[domain.Task]
	Invitations resource.Cache[domain.Invitation]
}

// Loading reports whether any collection is being refreshed.
func (s Snapshot) Loading() bool {
	return s.Groups.Loading || s.Tasks.Loading || s.Invitations.Loading
}

// VisibleTasks is the task list the signed-in subject may see.
func (s Snapshot) VisibleTasks() []domain.Task {
	return view.VisibleTasks(s.Groups.Items, s.Tasks.Items, s.Session.SubjectID)
}

// FilteredTasks narrows VisibleTasks by title search and group.
func (s Snapshot) FilteredTasks(search string, filter view.GroupFilter) []domain.Task {
	return view.FilteredTasks(s.VisibleTasks(), search, filter)
}

// TaskRows renders FilteredTasks with group labels.
func (s Snapshot) TaskRows(search string, filter view.GroupFilter) []view.TaskRow {
	return view.TaskRows(s.Groups.Items, s.FilteredTasks(search, filter))
}

// PendingInvitations lists invitations awaiting an answer.
func (s Snapshot) PendingInvitations() []domain.Invitation {
	return view.PendingInvitations(s.Invitations.Items)
}

// GroupName labels group id.
func (s Snapshot) GroupName(id int64) string {
	return view.GroupNameOf(s.Groups.Items, id)
}

// GroupOptions lists groups for a picker.
func (s Snapshot) GroupOptions() []view.Option {
	return view.GroupOptions(s.Groups.Items)
}

// Snapshot reads the current caches and session. Without a session every
// collection reads as empty.
func (d *Dashboard) Snapshot(ctx context.Context) Snapshot {
	store, _, _ := d.parts()
	sess, ok := d.tokens.Load(ctx)
	if !ok {
		return Snapshot{
			Groups:      resource.Cache[domain.Group]{Items: []domain.Group{}},
			Tasks:       resource.Cache[domain.Task]{Items: []domain.Task{}},
			Invitations: resource.Cache[domain.Invitation]{Items: []domain.Invitation{}},
		}
	}
	return Snapshot{
		Session:     sess,
		Groups:      store.Groups(),
		Tasks:       store.Tasks(),
		Invitations: store.Invitations(),
	}
}

// Loading reports whether kind is being refreshed.
func (d *Dashboard) Loading(kind domain.Kind) bool {
	store, _, _ := d.parts()
	return store.Loading(kind)
}
