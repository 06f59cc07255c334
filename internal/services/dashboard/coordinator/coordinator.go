package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

// Refresher reloads one cached collection.
type Refresher interface {
	Refresh(ctx context.Context, kind domain.Kind) error
}

// SessionGate reports the active session.
type SessionGate interface {
	RequireSession(ctx context.Context) (domain.Session, error)
}

// Options tunes a Coordinator.
type Options struct {
	// StepDelay is waited between bootstrap steps.
	StepDelay time.Duration
}

// Coordinator owns refresh ordering for a Refresher.
type Coordinator struct {
	store     Refresher
	sessions  SessionGate
	stepDelay time.Duration
}

// New builds a Coordinator.
func New(store Refresher, sessions SessionGate, opts Options) *Coordinator {
	delay := opts.StepDelay
	if delay < 0 {
		delay = 0
	}
	return &Coordinator{store: store, sessions: sessions, stepDelay: delay}
}

// Bootstrap loads groups, then tasks, then invitations, once per dashboard
// mount. Without a session it returns Unauthenticated before any fetch. An
// Unauthenticated step halts the sequence; other step failures stay recorded
// on their cache and the sequence continues.
func (c *Coordinator) Bootstrap(ctx context.Context) (Report, error) {
	if c.sessions != nil {
		if _, err := c.sessions.RequireSession(ctx); err != nil {
			return Report{Halted: true}, err
		}
	}
	pipeline := Pipeline{
		Steps: c.refreshSteps(domain.Kinds),
		Delay: c.stepDelay,
		Halt:  haltOnUnauthenticated,
	}
	report, err := pipeline.Run(ctx)
	for _, failed := range report.Failed() {
		log.Printf("coordinator: bootstrap step %s: %v", failed.Name, failed.Err)
	}
	return report, err
}

// Invalidate refreshes exactly the given kinds in canonical order, awaiting
// each. Duplicates collapse to one refresh.
func (c *Coordinator) Invalidate(ctx context.Context, kinds ...domain.Kind) error {
	ordered, err := canonical(kinds)
	if err != nil {
		return err
	}
	return c.invalidate(ctx, ordered)
}

// InvalidateInOrder refreshes the given kinds in exactly the order given.
func (c *Coordinator) InvalidateInOrder(ctx context.Context, kinds ...domain.Kind) error {
	ordered, err := dedupe(kinds)
	if err != nil {
		return err
	}
	return c.invalidate(ctx, ordered)
}

// Apply runs the invalidation set registered for action.
func (c *Coordinator) Apply(ctx context.Context, action Action) error {
	plan, ok := InvalidationFor(action)
	if !ok {
		return fmt.Errorf("no invalidation registered for %q", action)
	}
	if plan.Declared {
		return c.InvalidateInOrder(ctx, plan.Kinds...)
	}
	return c.Invalidate(ctx, plan.Kinds...)
}

func (c *Coordinator) invalidate(ctx context.Context, kinds []domain.Kind) error {
	pipeline := Pipeline{Steps: c.refreshSteps(kinds), Halt: haltOnUnauthenticated}
	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, failed := range report.Failed() {
		errs = append(errs, fmt.Errorf("refresh %s: %w", failed.Name, failed.Err))
	}
	return errors.Join(errs...)
}

func (c *Coordinator) refreshSteps(kinds []domain.Kind) []Step {
	steps := make([]Step, 0, len(kinds))
	for _, kind := range kinds {
		steps = append(steps, Step{
			Name: string(kind),
			Run: func(ctx context.Context) error {
				return c.store.Refresh(ctx, kind)
			},
		})
	}
	return steps
}

func haltOnUnauthenticated(err error) bool {
	return apperrors.Is(err, apperrors.KindUnauthenticated)
}

func dedupe(kinds []domain.Kind) ([]domain.Kind, error) {
	out := make([]domain.Kind, 0, len(kinds))
	for _, kind := range kinds {
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown resource type %q", kind)
		}
		if !slices.Contains(out, kind) {
			out = append(out, kind)
		}
	}
	return out, nil
}

func canonical(kinds []domain.Kind) ([]domain.Kind, error) {
	out, err := dedupe(kinds)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b domain.Kind) int {
		return a.Rank() - b.Rank()
	})
	return out, nil
}
