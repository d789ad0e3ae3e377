package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCode(t *testing.T) {
	err := New(CodeBadRequest, "invalid phone number")

	if !Is(err, CodeBadRequest) {
		t.Errorf("expected CodeBadRequest, got %v", HasCode(err))
	}
	if err.Error() != "invalid phone number" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "registry exchange failed")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if got := err.Error(); got != "registry exchange failed: connection refused" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestWrapThroughFmtChain(t *testing.T) {
	err := New(CodeNotFound, "subscriber not found")
	wrapped := fmt.Errorf("lookup: %w", err)

	if !Is(wrapped, CodeNotFound) {
		t.Error("code should be visible through fmt wrapping")
	}
}

func TestHasCodeOnPlainError(t *testing.T) {
	if got := HasCode(errors.New("boom")); got != CodeInternal {
		t.Errorf("plain errors should map to CodeInternal, got %v", got)
	}
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(CodeBadRequest, "x"), http.StatusBadRequest},
		{New(CodeNotFound, "x"), http.StatusNotFound},
		{New(CodeConflict, "x"), http.StatusConflict},
		{New(CodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		if got := ToHTTPStatus(tc.err); got != tc.want {
			t.Errorf("ToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
