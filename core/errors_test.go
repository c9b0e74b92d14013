package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError_WithPageNotFound(t *testing.T) {
	if !IsNotFoundError(ErrPageNotFound) {
		t.Error("expected true for ErrPageNotFound")
	}
}

func TestIsNotFoundError_WithWrappedError(t *testing.T) {
	err := fmt.Errorf("pages/missing.html: %w", ErrPageNotFound)
	if !IsNotFoundError(err) {
		t.Error("expected true for wrapped ErrPageNotFound")
	}
}

func TestIsNotFoundError_WithRouteNotFound(t *testing.T) {
	err := fmt.Errorf("route %q: %w", "nope", ErrRouteNotFound)
	if !IsNotFoundError(err) {
		t.Error("expected true for wrapped ErrRouteNotFound")
	}
}

func TestIsNotFoundError_WithDifferentError(t *testing.T) {
	if IsNotFoundError(errors.New("greetsite: page not found")) {
		t.Error("expected false for unrelated error with the same message")
	}
	if IsNotFoundError(ErrTemplate) {
		t.Error("expected false for ErrTemplate")
	}
}

func TestIsNotFoundError_WithNil(t *testing.T) {
	if IsNotFoundError(nil) {
		t.Error("expected false for nil error")
	}
}
