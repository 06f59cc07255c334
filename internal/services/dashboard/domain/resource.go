package domain

import "fmt"

// Kind names one independently cached resource collection.
type Kind string

const (
	KindGroups      Kind = "groups"
	KindTasks       Kind = "tasks"
	KindInvitations Kind = "invitations"
)

// Kinds lists every resource type in canonical refresh order. Groups come
// first because membership drives how tasks and invitations are read.
var Kinds = []Kind{KindGroups, KindTasks, KindInvitations}

// Rank returns the canonical position of k, or -1 for unknown kinds.
func (k Kind) Rank() int {
	for i, kind := range Kinds {
		if kind == k {
			return i
		}
	}
	return -1
}

// Valid reports whether k is a known resource type.
func (k Kind) Valid() bool {
	return k.Rank() >= 0
}

// ParseKind validates a resource type name.
func ParseKind(value string) (Kind, error) {
	kind := Kind(value)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown resource type %q", value)
	}
	return kind, nil
}

// Session is the client's record of being authenticated.
//
// SubjectID is decoded from the credential for client-side filtering only
// and may be empty when the payload carries no usable claim.
type Session struct {
	Credential string
	SubjectID  string
}
