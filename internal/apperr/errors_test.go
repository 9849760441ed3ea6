package apperr

import (
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(InvalidTransition, "cannot sell a product in state %s", "SOLD")
	if KindOf(err) != InvalidTransition {
		t.Errorf("KindOf = %s, want InvalidTransition", KindOf(err))
	}

	wrapped := fmt.Errorf("applying event: %w", err)
	if KindOf(wrapped) != InvalidTransition {
		t.Errorf("KindOf(wrapped) = %s, want InvalidTransition", KindOf(wrapped))
	}

	if KindOf(fmt.Errorf("plain")) != "" {
		t.Error("KindOf(plain error) should be empty")
	}
	if KindOf(nil) != "" {
		t.Error("KindOf(nil) should be empty")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{InvalidInput, http.StatusBadRequest},
		{InvalidTransition, http.StatusUnprocessableEntity},
		{ProductNotAvailableForSale, http.StatusUnprocessableEntity},
		{UnauthorizedActor, http.StatusForbidden},
		{ConflictRetry, http.StatusConflict},
		{NotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := HTTPStatus(New(tc.kind, "x")); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}

	if got := HTTPStatus(fmt.Errorf("plain")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d, want 500", got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(NotFound, "product %d not found", 42)
	want := "NOT_FOUND: product 42 not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
