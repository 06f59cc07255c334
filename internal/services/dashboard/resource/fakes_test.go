package resource

import (
	"context"
	"sync"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
)

type fakeReader struct {
	mu          sync.Mutex
	groups      []domain.Group
	tasks       []domain.Task
	invitations []domain.Invitation
	groupsErr   error
	tasksErr    error
	invitesErr  error
	calls       []domain.Kind

	// taskCalls, when set, hands each ListTasks call to the test which
	// decides what it returns and when.
	taskCalls chan pendingTasks
}

type pendingTasks struct {
	reply chan tasksReply
}

type tasksReply struct {
	items []domain.Task
	err   error
}

func (f *fakeReader) record(kind domain.Kind) {
	f.mu.Lock()
	f.calls = append(f.calls, kind)
	f.mu.Unlock()
}

func (f *fakeReader) ListGroups(context.Context) ([]domain.Group, error) {
	f.record(domain.KindGroups)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.groups, f.groupsErr
}

func (f *fakeReader) ListTasks(context.Context) ([]domain.Task, error) {
	f.record(domain.KindTasks)
	if f.taskCalls != nil {
		reply := make(chan tasksReply, 1)
		f.taskCalls <- pendingTasks{reply: reply}
		r := <-reply
		return r.items, r.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tasks, f.tasksErr
}

func (f *fakeReader) ListInvitations(context.Context) ([]domain.Invitation, error) {
	f.record(domain.KindInvitations)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invitations, f.invitesErr
}
