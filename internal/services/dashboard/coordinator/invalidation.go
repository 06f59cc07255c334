package coordinator

import "github.com/louisbranch/culater/internal/services/dashboard/domain"

// Action names a user mutation that changes server state.
type Action string

const (
	ActionCreateGroup       Action = "create_group"
	ActionUpdateGroup       Action = "update_group"
	ActionLeaveGroup        Action = "leave_group"
	ActionCreateTask        Action = "create_task"
	ActionUpdateTask        Action = "update_task"
	ActionDeleteTask        Action = "delete_task"
	ActionSendInvitation    Action = "send_invitation"
	ActionAcceptInvitation  Action = "accept_invitation"
	ActionDeclineInvitation Action = "decline_invitation"

	// Session actions carry no invalidation.
	ActionLogin  Action = "login"
	ActionSignup Action = "signup"
	ActionLogout Action = "logout"
)

// Invalidation is the set of collections an action makes stale.
type Invalidation struct {
	Kinds []domain.Kind
	// Declared keeps Kinds in the listed order instead of canonical order.
	Declared bool
}

var invalidations = map[Action]Invalidation{
	ActionCreateGroup: {Kinds: []domain.Kind{domain.KindGroups}},
	ActionUpdateGroup: {Kinds: []domain.Kind{domain.KindGroups}},
	ActionLeaveGroup:  {Kinds: []domain.Kind{domain.KindGroups}},
	ActionCreateTask:  {Kinds: []domain.Kind{domain.KindTasks}},
	ActionUpdateTask:  {Kinds: []domain.Kind{domain.KindTasks}},
	ActionDeleteTask:  {Kinds: []domain.Kind{domain.KindTasks}},
	// Accepting changes the invitation list first, then grants membership
	// and with it visibility of the group's tasks.
	ActionAcceptInvitation: {
		Kinds:    []domain.Kind{domain.KindInvitations, domain.KindGroups, domain.KindTasks},
		Declared: true,
	},
	ActionDeclineInvitation: {Kinds: []domain.Kind{domain.KindInvitations}},
	ActionSendInvitation:    {Kinds: []domain.Kind{domain.KindInvitations}},
}

// InvalidationFor returns the collections action makes stale.
func InvalidationFor(action Action) (Invalidation, bool) {
	plan, ok := invalidations[action]
	if !ok {
		return Invalidation{}, false
	}
	plan.Kinds = append([]domain.Kind(nil), plan.Kinds...)
	return plan, true
}
