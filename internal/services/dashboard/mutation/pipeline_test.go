package mutation

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

func validTask() TaskInput {
	return TaskInput{Title: "Ship it", GroupID: 1, DueDate: "2025-04-20T10:30:00+02:00"}
}

func TestCreateTaskNormalisesAndInvalidatesTasks(t *testing.T) {
	t.Parallel()

	p, api, inv, _ := newTestPipeline()
	task, err := p.CreateTask(context.Background(), validTask())
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.ID != 11 {
		t.Fatalf("task = %+v", task)
	}
	if got := api.lastTask.DueDate; got != "2025-04-20T08:30:00Z" {
		t.Fatalf("due date = %q, want UTC RFC 3339", got)
	}
	if !slices.Equal(inv.applied, []coordinator.Action{coordinator.ActionCreateTask}) {
		t.Fatalf("applied = %v", inv.applied)
	}
}

func TestCreateTaskValidationSkipsNetwork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  TaskInput
		fields []string
	}{
		{name: "empty", input: TaskInput{}, fields: []string{"title", "group_id", "due_date"}},
		{name: "blank title", input: TaskInput{Title: "  ", GroupID: 1, DueDate: "2025-04-20"}, fields: []string{"title"}},
		{name: "no group", input: TaskInput{Title: "x", DueDate: "2025-04-20"}, fields: []string{"group_id"}},
		{name: "bad date", input: TaskInput{Title: "x", GroupID: 1, DueDate: "next tuesday"}, fields: []string{"due_date"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, api, inv, _ := newTestPipeline()
			_, err := p.CreateTask(context.Background(), tc.input)
			if !apperrors.Is(err, apperrors.KindClientValidation) {
				t.Fatalf("CreateTask() error = %v, want client validation", err)
			}
			fields := apperrors.FieldErrors(err)
			if len(fields) != len(tc.fields) {
				t.Fatalf("fields = %v, want keys %v", fields, tc.fields)
			}
			for _, key := range tc.fields {
				if fields[key] == "" {
					t.Fatalf("fields = %v, missing %q", fields, key)
				}
			}
			if api.callCount() != 0 || len(inv.applied) != 0 {
				t.Fatalf("calls = %v, applied = %v, want none", api.calls, inv.applied)
			}
		})
	}
}

func TestCreateTaskWithoutGroups(t *testing.T) {
	t.Parallel()

	p, api, _, caches := newTestPipeline()
	caches.groups = nil

	_, err := p.CreateTask(context.Background(), validTask())
	if !errors.Is(err, ErrCreateGroupFirst) {
		t.Fatalf("CreateTask() error = %v, want %v", err, ErrCreateGroupFirst)
	}
	if !apperrors.Is(err, apperrors.KindClientValidation) {
		t.Fatalf("kind = %v, want client validation", apperrors.KindOf(err))
	}
	if api.callCount() != 0 {
		t.Fatal("expected no server call")
	}
}

func TestFailedMutationLeavesStateAndSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rejected := apperrors.Rejected(400, "Invalid request data")
	run := map[string]func(*Pipeline) error{
		"create group": func(p *Pipeline) error {
			_, err := p.CreateGroup(context.Background(), "Team", "")
			return err
		},
		"update group": func(p *Pipeline) error {
			_, err := p.UpdateGroup(context.Background(), 1, "Team", "")
			return err
		},
		"leave group":    func(p *Pipeline) error { return p.LeaveGroup(context.Background(), 1) },
		"create task":    func(p *Pipeline) error { _, err := p.CreateTask(context.Background(), validTask()); return err },
		"update task":    func(p *Pipeline) error { _, err := p.UpdateTask(context.Background(), 5, validTask()); return err },
		"accept":         func(p *Pipeline) error { return p.AcceptInvitation(context.Background(), 1) },
		"decline":        func(p *Pipeline) error { return p.DeclineInvitation(context.Background(), 1) },
		"send":           func(p *Pipeline) error { return p.SendInvitation(context.Background(), 1, "b@c.co", "") },
		"delete commit": func(p *Pipeline) error {
			c, err := p.RequestDeleteTask(5)
			if err != nil {
				return err
			}
			return p.CommitDeleteTask(context.Background(), c)
		},
	}
	for name, fn := range run {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, api, inv, caches := newTestPipeline()
			api.err = rejected
			err := fn(p)
			if !apperrors.Is(err, apperrors.KindServerRejected) || err.Error() != "Invalid request data" {
				t.Fatalf("error = %v, want verbatim rejection", err)
			}
			if len(inv.applied) != 0 {
				t.Fatalf("applied = %v, want none", inv.applied)
			}
			if len(caches.removed) != 0 {
				t.Fatalf("removed = %v, want none", caches.removed)
			}
			for _, action := range []coordinator.Action{
				coordinator.ActionCreateGroup, coordinator.ActionCreateTask, coordinator.ActionDeleteTask,
				coordinator.ActionAcceptInvitation, coordinator.ActionSendInvitation,
			} {
				if p.Submitting(action) {
					t.Fatalf("Submitting(%s) = true after failure", action)
				}
			}
		})
	}
}

func TestSubmittingWhileInFlight(t *testing.T) {
	t.Parallel()

	p, api, _, _ := newTestPipeline()
	api.block = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := p.CreateTask(context.Background(), validTask())
		done <- err
	}()
	for !p.Submitting(coordinator.ActionCreateTask) {
		select {
		case err := <-done:
			t.Fatalf("CreateTask() returned early: %v", err)
		default:
		}
	}
	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if p.Submitting(coordinator.ActionCreateTask) {
		t.Fatal("expected submitting cleared")
	}
}

func TestDeleteTaskIsTwoPhase(t *testing.T) {
	t.Parallel()

	p, api, inv, caches := newTestPipeline()
	confirmation, err := p.RequestDeleteTask(5)
	if err != nil {
		t.Fatalf("RequestDeleteTask() error = %v", err)
	}
	if api.callCount() != 0 {
		t.Fatal("request phase must not call the server")
	}
	if confirmation.Prompt() != `Delete task "Write report"?` {
		t.Fatalf("prompt = %q", confirmation.Prompt())
	}
	if err := p.CommitDeleteTask(context.Background(), confirmation); err != nil {
		t.Fatalf("CommitDeleteTask() error = %v", err)
	}
	if !slices.Equal(caches.removed, []int64{5}) {
		t.Fatalf("removed = %v", caches.removed)
	}
	if !slices.Equal(inv.applied, []coordinator.Action{coordinator.ActionDeleteTask}) {
		t.Fatalf("applied = %v", inv.applied)
	}
}

func TestCommitDeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	p, api, _, _ := newTestPipeline()
	if err := p.CommitDeleteTask(context.Background(), DeleteConfirmation{TaskID: 5}); !apperrors.Is(err, apperrors.KindClientValidation) {
		t.Fatalf("CommitDeleteTask() error = %v, want client validation", err)
	}
	if _, err := p.RequestDeleteTask(99); err == nil {
		t.Fatal("expected error for unknown task")
	}
	if api.callCount() != 0 {
		t.Fatal("expected no server call")
	}
}

func TestAcceptInvitationAppliesAcceptPlan(t *testing.T) {
	t.Parallel()

	p, _, inv, _ := newTestPipeline()
	if err := p.AcceptInvitation(context.Background(), 3); err != nil {
		t.Fatalf("AcceptInvitation() error = %v", err)
	}
	if !slices.Equal(inv.applied, []coordinator.Action{coordinator.ActionAcceptInvitation}) {
		t.Fatalf("applied = %v", inv.applied)
	}
}

func TestInvalidationFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()

	p, _, inv, _ := newTestPipeline()
	inv.err = apperrors.Network(errors.New("offline"))
	if err := p.DeclineInvitation(context.Background(), 3); err != nil {
		t.Fatalf("DeclineInvitation() error = %v", err)
	}

	inv.err = apperrors.Unauthenticated("session expired")
	if err := p.LeaveGroup(context.Background(), 1); !apperrors.Is(err, apperrors.KindUnauthenticated) {
		t.Fatalf("LeaveGroup() error = %v, want unauthenticated", err)
	}
}

func TestGroupValidation(t *testing.T) {
	t.Parallel()

	p, api, _, _ := newTestPipeline()
	if _, err := p.CreateGroup(context.Background(), " ", "desc"); apperrors.FieldErrors(err)["name"] == "" {
		t.Fatalf("CreateGroup() error = %v, want name error", err)
	}
	if _, err := p.UpdateGroup(context.Background(), 0, "Team", ""); apperrors.FieldErrors(err)["group_id"] == "" {
		t.Fatalf("UpdateGroup() error = %v, want group_id error", err)
	}
	if api.callCount() != 0 {
		t.Fatal("expected no server call")
	}

	if _, err := p.CreateGroup(context.Background(), " Team ", " about "); err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if api.lastGroup.Name != "Team" || api.lastGroup.Description != "about" {
		t.Fatalf("request = %+v", api.lastGroup)
	}
}

func TestSendInvitation(t *testing.T) {
	t.Parallel()

	p, api, _, _ := newTestPipeline()
	err := p.SendInvitation(context.Background(), 0, "not-an-email", "owner")
	fields := apperrors.FieldErrors(err)
	if fields["email"] == "" || fields["group_id"] == "" || fields["role"] == "" {
		t.Fatalf("fields = %v", fields)
	}
	if err := p.SendInvitation(context.Background(), 1, "b@c.co", ""); err != nil {
		t.Fatalf("SendInvitation() error = %v", err)
	}
	if api.lastInvitation.Role != "reader" || api.lastInvitation.Email != "b@c.co" {
		t.Fatalf("request = %+v", api.lastInvitation)
	}
}

func TestSignupValidationOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, email, password, license, field string
	}{
		{name: "email", email: "bad@", password: "short", license: "", field: "email"},
		{name: "password", email: "a@b.co", password: "short", license: "", field: "password"},
		{name: "license", email: "a@b.co", password: "longenough", license: "  ", field: "license_key"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, api, _, _ := newTestPipeline()
			err := p.Signup(context.Background(), tc.email, tc.password, tc.license)
			fields := apperrors.FieldErrors(err)
			if len(fields) != 1 || fields[tc.field] == "" {
				t.Fatalf("fields = %v, want only %q", fields, tc.field)
			}
			if api.callCount() != 0 {
				t.Fatal("expected no server call")
			}
		})
	}

	p, api, _, _ := newTestPipeline()
	if err := p.Signup(context.Background(), "a@b.co", "longenough", " KEY "); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if api.lastSignup.LicenseKey != "KEY" {
		t.Fatalf("license = %q", api.lastSignup.LicenseKey)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	p, api, _, _ := newTestPipeline()
	if _, err := p.Login(context.Background(), "", ""); len(apperrors.FieldErrors(err)) != 2 {
		t.Fatalf("Login() error = %v, want two field errors", err)
	}
	sess, err := p.Login(context.Background(), "ada@example.com", "pw")
	if err != nil || sess.SubjectID != "ada@example.com" {
		t.Fatalf("Login() = %+v, %v", sess, err)
	}
	if err := p.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if api.callCount() != 2 {
		t.Fatalf("calls = %v", api.calls)
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	for email, want := range map[string]bool{
		"a@b.co":          true,
		"first.last@x.io": true,
		"a@b":             false,
		"a b@c.co":        false,
		"Ada <a@b.co>":    false,
		"":                false,
		"@b.co":           false,
	} {
		if got := validEmail(email); got != want {
			t.Fatalf("validEmail(%q) = %v, want %v", email, got, want)
		}
	}
}
