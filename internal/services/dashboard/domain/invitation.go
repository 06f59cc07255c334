package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InvitationStatus is the lifecycle state of a group invitation. Only sent
// invitations are actionable; accepted and declined are terminal.
type InvitationStatus string

const (
	InvitationSent     InvitationStatus = "sent"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// UnmarshalJSON maps the server's legacy "pending" and "rejected" spellings
// onto sent and declined.
func (s *InvitationStatus) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode invitation status: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return nil
	case "sent", "pending":
		*s = InvitationSent
	case "accepted":
		*s = InvitationAccepted
	case "declined", "rejected":
		*s = InvitationDeclined
	default:
		return fmt.Errorf("unknown invitation status %q", value)
	}
	return nil
}

// Invitation is a pending or resolved invite to join a group.
type Invitation struct {
	ID           int64            `json:"id"`
	GroupID      int64            `json:"group_id"`
	GroupName    string           `json:"group_name"`
	InviterEmail string           `json:"inviter_email"`
	InviteDate   Timestamp        `json:"invite_date"`
	Status       InvitationStatus `json:"status"`
}

// UnmarshalJSON decodes an invitation, falling back to created_at when the
// server omits invite_date.
func (i *Invitation) UnmarshalJSON(data []byte) error {
	type invitation Invitation
	var decoded struct {
		invitation
		CreatedAt Timestamp `json:"created_at"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*i = Invitation(decoded.invitation)
	if i.InviteDate.IsZero() {
		i.InviteDate = decoded.CreatedAt
	}
	if i.Status == "" {
		i.Status = InvitationSent
	}
	return nil
}

// Pending reports whether the invitation still awaits a response.
func (i Invitation) Pending() bool {
	return i.Status == InvitationSent
}

// DisplayGroupName returns the group name, or the fallback label when the
// server left it blank.
func (i Invitation) DisplayGroupName() string {
	if name := strings.TrimSpace(i.GroupName); name != "" {
		return name
	}
	return FallbackGroupName(i.GroupID)
}
