package validation

import (
	"errors"
	"testing"
)

func TestErrors(t *testing.T) {
	errs := Errors{}
	if errs.Err() != nil {
		t.Fatalf("expected nil error for empty set")
	}

	errs.Add("password", BlankField)
	errs.Add("password", TooShort)
	errs.Add("email", AlreadyTaken)

	if !errs.Has("password", TooShort) || errs.Has("password", Mismatch) {
		t.Fatalf("unexpected membership: %v", errs)
	}

	want := "email has already been taken; password can't be blank; password is too short (minimum is 6 characters)"
	if got := errs.Error(); got != want {
		t.Fatalf("unexpected message:\n got: %q\nwant: %q", got, want)
	}

	var target Errors
	if !errors.As(errs.Err(), &target) || len(target) != 2 {
		t.Fatalf("expected Errors to survive errors.As, got %v", target)
	}
}

func TestKindMessages(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{kind: BlankField, want: "can't be blank"},
		{kind: TooShort, want: "is too short (minimum is 6 characters)"},
		{kind: TooLong, want: "is too long (maximum is 72 characters)"},
		{kind: Mismatch, want: "doesn't match Password"},
		{kind: AlreadyTaken, want: "has already been taken"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Message(); got != tt.want {
				t.Fatalf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
