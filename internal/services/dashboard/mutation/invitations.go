package mutation

import (
	"context"
	"net/mail"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

// SendInvitation invites email into a group. An empty role invites a reader.
func (p *Pipeline) SendInvitation(ctx context.Context, groupID int64, email string, role string) error {
	fields := map[string]string{}
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		fields["email"] = "please enter a valid email"
	}
	if groupID <= 0 {
		fields["group_id"] = "select a group"
	}
	parsedRole := domain.RoleReader
	if strings.TrimSpace(role) != "" {
		r, err := domain.ParseRole(role)
		if err != nil {
			fields["role"] = err.Error()
		}
		parsedRole = r
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}

	done := p.begin(coordinator.ActionSendInvitation)
	defer done()
	if err := p.api.SendInvitation(ctx, gateway.InvitationRequest{Email: email, GroupID: groupID, Role: parsedRole}); err != nil {
		return err
	}
	return p.invalidate(ctx, coordinator.ActionSendInvitation)
}

// AcceptInvitation joins the inviting group, then refreshes invitations,
// groups and tasks in that order.
func (p *Pipeline) AcceptInvitation(ctx context.Context, groupID int64) error {
	if groupID <= 0 {
		return apperrors.Validation(map[string]string{"group_id": "select an invitation"})
	}
	done := p.begin(coordinator.ActionAcceptInvitation)
	defer done()

	if err := p.api.AcceptInvitation(ctx, groupID); err != nil {
		return err
	}
	return p.invalidate(ctx, coordinator.ActionAcceptInvitation)
}

// DeclineInvitation rejects an invitation and refreshes invitations.
func (p *Pipeline) DeclineInvitation(ctx context.Context, groupID int64) error {
	if groupID <= 0 {
		return apperrors.Validation(map[string]string{"group_id": "select an invitation"})
	}
	done := p.begin(coordinator.ActionDeclineInvitation)
	defer done()

	if err := p.api.DeclineInvitation(ctx, groupID); err != nil {
		return err
	}
	return p.invalidate(ctx, coordinator.ActionDeclineInvitation)
}

// validEmail requires a bare address with a dotted domain.
func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	domainPart := email[at+1:]
	dot := strings.LastIndex(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}
