package mutation

import (
	"context"
	"log"
	"sync"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/culater/internal/services/dashboard/resource"
)

// Gateway is the subset of the API client mutations call.
type Gateway interface {
	Login(ctx context.Context, creds gateway.Credentials) (domain.Session, error)
	Signup(ctx context.Context, req gateway.SignupRequest) error
	Logout(ctx context.Context) error
	CreateGroup(ctx context.Context, req gateway.GroupRequest) (domain.Group, error)
	UpdateGroup(ctx context.Context, id int64, req gateway.GroupRequest) (domain.Group, error)
	LeaveGroup(ctx context.Context, id int64) error
	CreateTask(ctx context.Context, req gateway.TaskRequest) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, req gateway.TaskRequest) (domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	SendInvitation(ctx context.Context, req gateway.InvitationRequest) error
	AcceptInvitation(ctx context.Context, groupID int64) error
	DeclineInvitation(ctx context.Context, groupID int64) error
}

// Invalidator refreshes what an action made stale.
type Invalidator interface {
	Apply(ctx context.Context, action coordinator.Action) error
}

// Caches is the read side of the resource store plus confirmed deletions.
type Caches interface {
	Groups() resource.Cache[domain.Group]
	Tasks() resource.Cache[domain.Task]
	RemoveTask(id int64)
}

// Pipeline runs mutations.
type Pipeline struct {
	api         Gateway
	invalidator Invalidator
	caches      Caches

	mu         sync.Mutex
	submitting map[coordinator.Action]int
}

// New builds a Pipeline.
func New(api Gateway, invalidator Invalidator, caches Caches) *Pipeline {
	return &Pipeline{
		api:         api,
		invalidator: invalidator,
		caches:      caches,
		submitting:  make(map[coordinator.Action]int),
	}
}

// Submitting reports whether a call for action is in flight.
func (p *Pipeline) Submitting(action coordinator.Action) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitting[action] > 0
}

func (p *Pipeline) begin(action coordinator.Action) func() {
	p.mu.Lock()
	p.submitting[action]++
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		p.submitting[action]--
		if p.submitting[action] <= 0 {
			delete(p.submitting, action)
		}
		p.mu.Unlock()
	}
}

// invalidate refreshes after a successful call. Refresh failures are already
// recorded on their caches, so only a lost session is returned to the caller.
func (p *Pipeline) invalidate(ctx context.Context, action coordinator.Action) error {
	if p.invalidator == nil {
		return nil
	}
	err := p.invalidator.Apply(ctx, action)
	if err == nil {
		return nil
	}
	if apperrors.Is(err, apperrors.KindUnauthenticated) {
		return err
	}
	log.Printf("mutation: %s: refresh after success: %v", action, err)
	return nil
}
