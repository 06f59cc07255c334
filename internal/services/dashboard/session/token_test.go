package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoadFailsClosedAndClearsMalformedCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		credential string
	}{
		{name: "empty", credential: ""},
		{name: "undefined literal", credential: "undefined"},
		{name: "two segments", credential: "abc.def"},
		{name: "four segments", credential: "a.b.c.d"},
		{name: "empty payload", credential: "abc..sig"},
		{name: "invalid characters", credential: "ab$c.def.ghi"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := NewMemoryStore()
			if err := store.WriteCredential(context.Background(), tc.credential); err != nil {
				t.Fatalf("write credential: %v", err)
			}
			tokens := NewTokenStore(store)

			if _, ok := tokens.Load(context.Background()); ok {
				t.Fatalf("Load() reported a session for %q", tc.credential)
			}
			if _, present, _ := store.ReadCredential(context.Background()); present {
				t.Fatalf("expected stale credential %q to be cleared", tc.credential)
			}
		})
	}
}

func TestLoadAbsentCredential(t *testing.T) {
	t.Parallel()

	if _, ok := NewTokenStore(nil).Load(context.Background()); ok {
		t.Fatal("expected no session for empty store")
	}
}

func TestLoadDecodesSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{name: "sub claim", claims: jwt.MapClaims{"sub": "ada@example.com"}, want: "ada@example.com"},
		{name: "identity claim", claims: jwt.MapClaims{"identity": "bob@example.com"}, want: "bob@example.com"},
		{name: "numeric user id", claims: jwt.MapClaims{"user_id": float64(42)}, want: "42"},
		{name: "no usable claim", claims: jwt.MapClaims{"global_roles": []string{"admin"}}, want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tokens := NewTokenStore(nil)
			if err := tokens.Save(context.Background(), signedToken(t, tc.claims)); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			sess, ok := tokens.Load(context.Background())
			if !ok {
				t.Fatal("expected session")
			}
			if sess.SubjectID != tc.want {
				t.Fatalf("SubjectID = %q, want %q", sess.SubjectID, tc.want)
			}
		})
	}
}

func TestLoadKeepsSessionWhenPayloadDoesNotDecode(t *testing.T) {
	t.Parallel()

	tokens := NewTokenStore(nil)
	// Well-formed segments whose payload is not JSON.
	if err := tokens.Save(context.Background(), "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.c2ln"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	sess, ok := tokens.Load(context.Background())
	if !ok {
		t.Fatal("expected transport-valid session")
	}
	if sess.SubjectID != "" {
		t.Fatalf("SubjectID = %q, want empty", sess.SubjectID)
	}
}

func TestRequireSessionReturnsUnauthenticated(t *testing.T) {
	t.Parallel()

	_, err := NewTokenStore(nil).RequireSession(context.Background())
	if !apperrors.Is(err, apperrors.KindUnauthenticated) {
		t.Fatalf("RequireSession() error = %v, want unauthenticated", err)
	}
}

func TestSaveRejectsBlankAndClearRemoves(t *testing.T) {
	t.Parallel()

	tokens := NewTokenStore(nil)
	if err := tokens.Save(context.Background(), "  "); err == nil {
		t.Fatal("expected blank credential to be rejected")
	}
	if err := tokens.Save(context.Background(), signedToken(t, jwt.MapClaims{"sub": "ada"})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := tokens.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok := tokens.Load(context.Background()); ok {
		t.Fatal("expected no session after Clear()")
	}
}

type failingStore struct{ MemoryStore }

func (*failingStore) ReadCredential(context.Context) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func TestLoadTreatsReadFailureAsAbsent(t *testing.T) {
	t.Parallel()

	if _, ok := NewTokenStore(&failingStore{}).Load(context.Background()); ok {
		t.Fatal("expected read failure to fail closed")
	}
}
