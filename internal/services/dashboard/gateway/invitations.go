package gateway

import (
	"context"
	"net/http"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
)

// InvitationRequest is the body for send/accept/decline. Email and Role are
// only sent when inviting.
type InvitationRequest struct {
	Email   string      `json:"email,omitempty"`
	GroupID int64       `json:"group_id"`
	Role    domain.Role `json:"role,omitempty"`
}

type invitationsEnvelope struct {
	Invitations []domain.Invitation `json:"invitations"`
}

// ListInvitations returns invitations addressed to the caller.
func (c *Client) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	var resp invitationsEnvelope
	if err := c.do(ctx, call{name: "invites.list", method: http.MethodGet, path: "/api/invites/", out: &resp, sessionBound: true}); err != nil {
		return nil, err
	}
	if resp.Invitations == nil {
		return []domain.Invitation{}, nil
	}
	return resp.Invitations, nil
}

// SendInvitation invites email into a group with role.
func (c *Client) SendInvitation(ctx context.Context, req InvitationRequest) error {
	return c.do(ctx, call{name: "invites.send", method: http.MethodPost, path: "/api/invites/send", body: req, sessionBound: true})
}

// AcceptInvitation joins the group the caller was invited to.
func (c *Client) AcceptInvitation(ctx context.Context, groupID int64) error {
	return c.do(ctx, call{name: "invites.accept", method: http.MethodPost, path: "/api/invites/accept", body: InvitationRequest{GroupID: groupID}, sessionBound: true})
}

// DeclineInvitation rejects the invitation to a group.
func (c *Client) DeclineInvitation(ctx context.Context, groupID int64) error {
	return c.do(ctx, call{name: "invites.decline", method: http.MethodPost, path: "/api/invites/decline", body: InvitationRequest{GroupID: groupID}, sessionBound: true})
}
