package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfClassifiesTypedErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "untyped", err: errors.New("boom"), want: KindUnknown},
		{name: "unauthenticated", err: Unauthenticated("no session"), want: KindUnauthenticated},
		{name: "network", err: Network(errors.New("dial tcp")), want: KindNetwork},
		{name: "rejected", err: Rejected(400, "name taken"), want: KindServerRejected},
		{name: "validation", err: Validation(map[string]string{"title": "required"}), want: KindClientValidation},
		{name: "wrapped", err: fmt.Errorf("create group: %w", Rejected(409, "dup")), want: KindServerRejected},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRejectedKeepsServerMessageVerbatim(t *testing.T) {
	t.Parallel()

	err := Rejected(400, "  Group name already exists ")
	if got := err.Error(); got != "Group name already exists" {
		t.Fatalf("Error() = %q", got)
	}
	if got := StatusCode(err); got != 400 {
		t.Fatalf("StatusCode() = %d, want 400", got)
	}
	if got := Rejected(500, "").Error(); got != "request rejected with status 500" {
		t.Fatalf("empty message fallback = %q", got)
	}
}

func TestValidationErrorCopiesFieldsAndRendersSorted(t *testing.T) {
	t.Parallel()

	fields := map[string]string{"title": "title is required", "due_date": "due date is required"}
	err := Validation(fields)
	fields["title"] = "mutated"

	got := FieldErrors(err)
	if got["title"] != "title is required" {
		t.Fatalf("FieldErrors()[title] = %q, want original message", got["title"])
	}
	if want := "due_date: due date is required; title: title is required"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if FieldErrors(errors.New("plain")) != nil {
		t.Fatal("expected nil fields for untyped error")
	}
}

func TestNetworkUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Network(cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected network error to unwrap to its cause")
	}
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	if got := UserMessage(Network(nil)); got != "network error: check your connection" {
		t.Fatalf("network message = %q", got)
	}
	if got := UserMessage(Rejected(400, "Bad credentials")); got != "Bad credentials" {
		t.Fatalf("rejected message = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "something went wrong, please try again" {
		t.Fatalf("unknown message = %q", got)
	}
	if got := UserMessage(nil); got != "" {
		t.Fatalf("nil message = %q", got)
	}
}

func TestErrorStringFallsBackToKind(t *testing.T) {
	t.Parallel()

	if got := (Error{Kind: KindUnauthenticated}).Error(); got != string(KindUnauthenticated) {
		t.Fatalf("Error() = %q", got)
	}
}
