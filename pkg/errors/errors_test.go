package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeOutOfRange, "identifier %d exceeds capacity", 2000000)

	if err.Code != ErrCodeOutOfRange {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeOutOfRange)
	}
	want := "OUT_OF_RANGE: identifier 2000000 exceeds capacity"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "writing artifact")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
	want := "INTERNAL_ERROR: writing artifact: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeParityMismatch, "parity cell disagrees")

	if !Is(err, ErrCodeParityMismatch) {
		t.Error("Is did not match the error's own code")
	}
	if Is(err, ErrCodeOutOfRange) {
		t.Error("Is matched a different code")
	}
	if Is(nil, ErrCodeOutOfRange) {
		t.Error("Is matched nil")
	}
	if Is(stderrors.New("plain"), ErrCodeOutOfRange) {
		t.Error("Is matched a plain error")
	}

	// The code survives wrapping through fmt.
	wrapped := fmt.Errorf("render: %w", err)
	if !Is(wrapped, ErrCodeParityMismatch) {
		t.Error("Is did not unwrap through fmt.Errorf")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidCode, "bad")); got != ErrCodeInvalidCode {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInvalidCode)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidPosition, "slot 9 outside range")
	if got := UserMessage(err); got != "slot 9 outside range" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
