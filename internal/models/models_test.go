package models

import (
	"errors"
	"fmt"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Matching(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", &NotFoundError{Entity: "member", Key: "bob"}, ErrNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &NotFoundError{Entity: "job title", Key: "x"}), ErrNotFound},
		{"validation", &ValidationError{Field: "password", Reason: "required"}, ErrValidation},
		{"connection", &ConnectionError{Backend: "redis", Err: ErrNotConnected}, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
		})
	}
}

func TestErrors_As(t *testing.T) {
	base := errors.New("timeout")
	err := fmt.Errorf("save: %w", &PartialWriteError{
		Completed: []string{"profile"},
		Failed:    "avatar",
		Err:       base,
	})

	var pw *PartialWriteError
	if !errors.As(err, &pw) {
		t.Fatal("expected PartialWriteError")
	}
	if pw.Failed != "avatar" || len(pw.Completed) != 1 {
		t.Errorf("unexpected partial write: %+v", pw)
	}
	if !errors.Is(err, base) {
		t.Error("PartialWriteError should unwrap to its cause")
	}
}

func TestErrors_Messages(t *testing.T) {
	nf := &NotFoundError{Entity: "department", Key: "Sales"}
	if nf.Error() != `department "Sales" not found` {
		t.Errorf("got %q", nf.Error())
	}
	ve := &ValidationError{Field: "price", Reason: "must not be negative"}
	if ve.Error() != "invalid price: must not be negative" {
		t.Errorf("got %q", ve.Error())
	}
}

// ============================================================================
// Password Tests
// ============================================================================

func TestHashPassword(t *testing.T) {
	tests := []struct {
		plain string
		want  string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, tt := range tests {
		if got := HashPassword(tt.plain); got != tt.want {
			t.Errorf("HashPassword(%q) = %s, want %s", tt.plain, got, tt.want)
		}
	}
}

func TestLoginResult_String(t *testing.T) {
	if LoginSuccess.String() != "successful" {
		t.Errorf("got %q", LoginSuccess.String())
	}
	if LoginWrongPassword.String() != "wrong" {
		t.Errorf("got %q", LoginWrongPassword.String())
	}
	if LoginNotFound.String() != "not-found" {
		t.Errorf("got %q", LoginNotFound.String())
	}
}

// ============================================================================
// Employee Id Tests
// ============================================================================

func TestCompareEmployeeIDs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"EN2", "EN10", -1},
		{"EN10", "EN2", 1},
		{"EN7", "EN7", 0},
		{"EN0101", "EN99", 1},
		{"EN5", "draft", -1},
		{"draft", "EN5", 1},
		{"a", "b", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := CompareEmployeeIDs(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareEmployeeIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
