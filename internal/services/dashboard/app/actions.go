package app

import (
	"context"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/mutation"
)

// Login signs in and stores the session. A new session starts from empty
// caches.
func (d *Dashboard) Login(ctx context.Context, email, password string) (domain.Session, error) {
	_, _, m := d.parts()
	sess, err := m.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	d.signOut()
	return sess, nil
}

// Signup registers an account.
func (d *Dashboard) Signup(ctx context.Context, email, password, licenseKey string) error {
	_, _, m := d.parts()
	return m.Signup(ctx, email, password, licenseKey)
}

// Logout ends the session and drops every cached collection.
func (d *Dashboard) Logout(ctx context.Context) error {
	_, _, m := d.parts()
	if err := m.Logout(ctx); err != nil {
		return d.settle(err)
	}
	d.signOut()
	return nil
}

// Submitting reports whether action is in flight.
func (d *Dashboard) Submitting(action coordinator.Action) bool {
	_, _, m := d.parts()
	return m.Submitting(action)
}

// CreateGroup creates a group and reloads the group list.
func (d *Dashboard) CreateGroup(ctx context.Context, name, description string) (domain.Group, error) {
	_, _, m := d.parts()
	group, err := m.CreateGroup(ctx, name, description)
	return group, d.settle(err)
}

// UpdateGroup renames or redescribes a group.
func (d *Dashboard) UpdateGroup(ctx context.Context, id int64, name, description string) (domain.Group, error) {
	_, _, m := d.parts()
	group, err := m.UpdateGroup(ctx, id, name, description)
	return group, d.settle(err)
}

// LeaveGroup removes the signed-in subject from a group.
func (d *Dashboard) LeaveGroup(ctx context.Context, id int64) error {
	_, _, m := d.parts()
	return d.settle(m.LeaveGroup(ctx, id))
}

// GroupMembers fetches the member list of one group. It is not cached.
func (d *Dashboard) GroupMembers(ctx context.Context, id int64) ([]domain.Member, error) {
	group, err := d.api.GetGroup(ctx, id)
	if err != nil {
		return nil, d.settle(err)
	}
	return group.Members, nil
}

// CreateTask validates input and creates a task.
func (d *Dashboard) CreateTask(ctx context.Context, input mutation.TaskInput) (domain.Task, error) {
	_, _, m := d.parts()
	task, err := m.CreateTask(ctx, input)
	return task, d.settle(err)
}

// UpdateTask validates input and replaces a task's fields.
func (d *Dashboard) UpdateTask(ctx context.Context, id int64, input mutation.TaskInput) (domain.Task, error) {
	_, _, m := d.parts()
	task, err := m.UpdateTask(ctx, id, input)
	return task, d.settle(err)
}

// RequestDeleteTask starts a two-phase deletion.
func (d *Dashboard) RequestDeleteTask(id int64) (mutation.DeleteConfirmation, error) {
	_, _, m := d.parts()
	return m.RequestDeleteTask(id)
}

// CommitDeleteTask finishes a confirmed deletion.
func (d *Dashboard) CommitDeleteTask(ctx context.Context, confirmation mutation.DeleteConfirmation) error {
	_, _, m := d.parts()
	return d.settle(m.CommitDeleteTask(ctx, confirmation))
}

// SendInvitation invites email to a group with role.
func (d *Dashboard) SendInvitation(ctx context.Context, groupID int64, email, role string) error {
	_, _, m := d.parts()
	return d.settle(m.SendInvitation(ctx, groupID, email, role))
}

// AcceptInvitation joins the group behind a pending invitation.
func (d *Dashboard) AcceptInvitation(ctx context.Context, groupID int64) error {
	_, _, m := d.parts()
	return d.settle(m.AcceptInvitation(ctx, groupID))
}

// DeclineInvitation turns down a pending invitation.
func (d *Dashboard) DeclineInvitation(ctx context.Context, groupID int64) error {
	_, _, m := d.parts()
	return d.settle(m.DeclineInvitation(ctx, groupID))
}
