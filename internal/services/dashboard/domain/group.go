package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Role is a member's permission level inside one group.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleContributor Role = "contributor"
	RoleReader      Role = "reader"
)

// ParseRole normalises a role name. Unknown names are rejected.
func ParseRole(value string) (Role, error) {
	switch role := Role(strings.ToLower(strings.TrimSpace(value))); role {
	case RoleAdmin, RoleContributor, RoleReader:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Member is one entry in a group's member list.
type Member struct {
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// UnmarshalJSON accepts the object form and the bare identifier form the
// group-create endpoint echoes back.
func (m *Member) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		type member Member
		var decoded member
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return fmt.Errorf("decode member: %w", err)
		}
		*m = Member(decoded)
		m.Email = strings.TrimSpace(m.Email)
		return nil
	}
	value, err := scalarString(trimmed)
	if err != nil {
		return fmt.Errorf("decode member: %w", err)
	}
	*m = Member{Email: value}
	return nil
}

// Group is the client's cached copy of a collaborative group.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     Subject   `json:"owner_id"`
	CreatedAt   Timestamp `json:"created_at"`
	Members     []Member  `json:"members"`
}

// UnmarshalJSON decodes a group and guarantees a non-nil member list.
func (g *Group) UnmarshalJSON(data []byte) error {
	type group Group
	var decoded group
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Members == nil {
		decoded.Members = []Member{}
	}
	*g = Group(decoded)
	return nil
}

// HasMember reports whether subject belongs to g.
//
// The group list endpoint is already scoped to the caller, so a group whose
// member list was not included is treated as belonging to the subject, as is
// every group when the subject could not be decoded from the credential.
func (g Group) HasMember(subject string) bool {
	subject = strings.TrimSpace(subject)
	if subject == "" || len(g.Members) == 0 {
		return true
	}
	if strings.EqualFold(string(g.OwnerID), subject) {
		return true
	}
	for _, member := range g.Members {
		if strings.EqualFold(member.Email, subject) {
			return true
		}
	}
	return false
}

// FallbackGroupName is the label shown for a group id missing from the cache.
func FallbackGroupName(id int64) string {
	return "Group #" + strconv.FormatInt(id, 10)
}
