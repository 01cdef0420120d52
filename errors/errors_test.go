package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeUnavailable, true},
		{ErrCodeStreamFailed, true},
		{ErrCodeInterrupted, false},
		{ErrCodeUnexpected, false},
		{ErrCodeNotFound, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg")
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v for %s", tc.retryable, tc.code)
			}
		})
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	err := Unexpected(fmt.Errorf("boom"))
	msg := err.Error()
	if !strings.Contains(msg, "UNEXPECTED") || !strings.Contains(msg, "Unexpected exception") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "cause: boom") {
		t.Errorf("expected cause in message, got %q", msg)
	}
}

func TestAppError_Error_WithoutCause(t *testing.T) {
	err := Timeout("Publisher onComplete")
	if err.Error() != "TIMEOUT: Publisher onComplete timed out" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Details["operation"] != "Publisher onComplete" {
		t.Errorf("expected operation detail, got %v", err.Details["operation"])
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := Interrupted("Interrupted waiting for observation", context.Canceled)
	if !stderrors.Is(err, context.Canceled) {
		t.Error("expected errors.Is to find context.Canceled")
	}
	if err.Retryable {
		t.Error("INTERRUPTED should not be retryable")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := New(ErrCodeInternal, "x").WithDetail("k", 1)
	if err.Details["k"] != 1 {
		t.Errorf("expected detail k=1, got %v", err.Details["k"])
	}
}

func TestNotFound_EmptyID(t *testing.T) {
	err := NotFound("document", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("document", "abc")
	if err.Code != ErrCodeAlreadyExists {
		t.Errorf("expected ALREADY_EXISTS, got %s", err.Code)
	}
	if err.Details["id"] != "abc" {
		t.Errorf("expected id=abc, got %v", err.Details["id"])
	}
}

func TestAsAppError(t *testing.T) {
	inner := StreamFailed("find", nil)
	wrapped := fmt.Errorf("outer: %w", inner)

	got, ok := AsAppError(wrapped)
	if !ok || got != inner {
		t.Fatal("expected to unwrap to the inner AppError")
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", Timeout("await"))
	if !IsCode(err, ErrCodeTimeout) {
		t.Error("expected TIMEOUT code")
	}
	if IsCode(err, ErrCodeInterrupted) {
		t.Error("did not expect INTERRUPTED code")
	}
	if IsCode(nil, ErrCodeTimeout) {
		t.Error("nil error has no code")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(Unavailable("store")) {
		t.Error("UNAVAILABLE should be retryable")
	}
	if IsRetryable(InvalidInput("n", "must be positive")) {
		t.Error("INVALID_INPUT should not be retryable")
	}
	if IsRetryable(stderrors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}
