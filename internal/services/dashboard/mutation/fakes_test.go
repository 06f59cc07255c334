package mutation

import (
	"context"
	"sync"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	"github.com/louisbranch/culater/internal/services/dashboard/resource"
)

// fakeGateway records calls by name and fails them when err is set.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string
	err   error

	lastTask       gateway.TaskRequest
	lastGroup      gateway.GroupRequest
	lastInvitation gateway.InvitationRequest
	lastSignup     gateway.SignupRequest
	// block, when set, is waited on inside CreateTask.
	block chan struct{}
}

func (f *fakeGateway) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) Login(_ context.Context, creds gateway.Credentials) (domain.Session, error) {
	if err := f.record("login"); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Credential: "a.b.c", SubjectID: creds.Email}, nil
}

func (f *fakeGateway) Signup(_ context.Context, req gateway.SignupRequest) error {
	f.lastSignup = req
	return f.record("signup")
}

func (f *fakeGateway) Logout(context.Context) error { return f.record("logout") }

func (f *fakeGateway) CreateGroup(_ context.Context, req gateway.GroupRequest) (domain.Group, error) {
	f.lastGroup = req
	if err := f.record("create_group"); err != nil {
		return domain.Group{}, err
	}
	return domain.Group{ID: 7, Name: req.Name}, nil
}

func (f *fakeGateway) UpdateGroup(_ context.Context, id int64, req gateway.GroupRequest) (domain.Group, error) {
	f.lastGroup = req
	if err := f.record("update_group"); err != nil {
		return domain.Group{}, err
	}
	return domain.Group{ID: id, Name: req.Name}, nil
}

func (f *fakeGateway) LeaveGroup(context.Context, int64) error { return f.record("leave_group") }

func (f *fakeGateway) CreateTask(_ context.Context, req gateway.TaskRequest) (domain.Task, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.lastTask = req
	f.mu.Unlock()
	if err := f.record("create_task"); err != nil {
		return domain.Task{}, err
	}
	return domain.Task{ID: 11, Title: req.Title, GroupID: req.GroupID}, nil
}

func (f *fakeGateway) UpdateTask(_ context.Context, id int64, req gateway.TaskRequest) (domain.Task, error) {
	f.lastTask = req
	if err := f.record("update_task"); err != nil {
		return domain.Task{}, err
	}
	return domain.Task{ID: id, Title: req.Title}, nil
}

func (f *fakeGateway) DeleteTask(context.Context, int64) error { return f.record("delete_task") }

func (f *fakeGateway) SendInvitation(_ context.Context, req gateway.InvitationRequest) error {
	f.lastInvitation = req
	return f.record("send_invitation")
}

func (f *fakeGateway) AcceptInvitation(context.Context, int64) error {
	return f.record("accept_invitation")
}

func (f *fakeGateway) DeclineInvitation(context.Context, int64) error {
	return f.record("decline_invitation")
}

type fakeInvalidator struct {
	mu      sync.Mutex
	applied []coordinator.Action
	err     error
}

func (f *fakeInvalidator) Apply(_ context.Context, action coordinator.Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, action)
	return f.err
}

type fakeCaches struct {
	groups  []domain.Group
	tasks   []domain.Task
	removed []int64
}

func (f *fakeCaches) Groups() resource.Cache[domain.Group] {
	return resource.Cache[domain.Group]{Items: f.groups}
}

func (f *fakeCaches) Tasks() resource.Cache[domain.Task] {
	return resource.Cache[domain.Task]{Items: f.tasks}
}

func (f *fakeCaches) RemoveTask(id int64) {
	f.removed = append(f.removed, id)
}

func newTestPipeline() (*Pipeline, *fakeGateway, *fakeInvalidator, *fakeCaches) {
	api := &fakeGateway{}
	inv := &fakeInvalidator{}
	caches := &fakeCaches{
		groups: []domain.Group{{ID: 1, Name: "Alpha"}},
		tasks:  []domain.Task{{ID: 5, Title: "Write report", GroupID: 1}},
	}
	return New(api, inv, caches), api, inv, caches
}
