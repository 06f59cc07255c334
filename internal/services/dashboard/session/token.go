package session

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

// undefinedCredential is what a careless client writes when it stores an
// unset token; it must never count as a session.
const undefinedCredential = "undefined"

// subjectClaims are checked in order when deriving the subject id.
var subjectClaims = []string{"identity", "email", "user_id"}

// TokenStore loads, saves and clears the session credential.
type TokenStore struct {
	store CredentialStore
}

// NewTokenStore builds a TokenStore over store. A nil store keeps the
// credential in memory.
func NewTokenStore(store CredentialStore) *TokenStore {
	if store == nil {
		store = NewMemoryStore()
	}
	return &TokenStore{store: store}
}

// Load returns the current session. Absent, "undefined" and structurally
// malformed credentials all report no session, and any stale stored value is
// cleared.
func (s *TokenStore) Load(ctx context.Context) (domain.Session, bool) {
	credential, ok, err := s.store.ReadCredential(ctx)
	if err != nil {
		log.Printf("session: read credential: %v", err)
		return domain.Session{}, false
	}
	if !ok {
		return domain.Session{}, false
	}
	credential = strings.TrimSpace(credential)
	if !WellFormed(credential) {
		if err := s.store.DeleteCredential(ctx); err != nil {
			log.Printf("session: clear stale credential: %v", err)
		}
		return domain.Session{}, false
	}
	return domain.Session{
		Credential: credential,
		SubjectID:  decodeSubject(credential),
	}, true
}

// RequireSession returns the current session or an Unauthenticated error.
// Protected views call it before starting any fetch.
func (s *TokenStore) RequireSession(ctx context.Context) (domain.Session, error) {
	sess, ok := s.Load(ctx)
	if !ok {
		return domain.Session{}, apperrors.Unauthenticated("no active session")
	}
	return sess, nil
}

// Save stores a freshly issued credential.
func (s *TokenStore) Save(ctx context.Context, credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return fmt.Errorf("credential is required")
	}
	if err := s.store.WriteCredential(ctx, credential); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Clear ends the session.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.store.DeleteCredential(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// WellFormed reports whether credential has the header.payload.signature
// shape of a compact JWT with non-empty base64url header and payload.
func WellFormed(credential string) bool {
	if credential == "" || credential == undefinedCredential {
		return false
	}
	segments := strings.Split(credential, ".")
	if len(segments) != 3 {
		return false
	}
	for _, segment := range segments[:2] {
		if segment == "" || !isBase64URL(segment) {
			return false
		}
	}
	return isBase64URL(segments[2])
}

func isBase64URL(segment string) bool {
	for _, r := range segment {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '=':
		default:
			return false
		}
	}
	return true
}

// decodeSubject reads the subject from the unverified payload. Verification
// is the server's job; a payload that does not decode leaves the subject
// empty without invalidating the session.
func decodeSubject(credential string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return ""
	}
	if subject, err := claims.GetSubject(); err == nil && strings.TrimSpace(subject) != "" {
		return strings.TrimSpace(subject)
	}
	for _, name := range subjectClaims {
		switch value := claims[name].(type) {
		case string:
			if strings.TrimSpace(value) != "" {
				return strings.TrimSpace(value)
			}
		case float64:
			return fmt.Sprintf("%.0f", value)
		}
	}
	return ""
}
