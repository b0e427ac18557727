package collerr

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	err := New("vector.Get", IndexOutOfRange, nil)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("errors.Is(%v, ErrIndexOutOfRange) = false, want true", err)
	}
	if errors.Is(err, ErrUnderflow) {
		t.Fatalf("errors.Is(%v, ErrUnderflow) = true, want false", err)
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := New("arena.deref", InvalidHandle, errors.New("nil handle"))
	var target *Error
	if !errors.As(wrapped, &target) {
		t.Fatalf("errors.As failed to recover *Error")
	}
	if target.Kind != InvalidHandle {
		t.Errorf("Kind = %v, want %v", target.Kind, InvalidHandle)
	}
	if target.Op != "arena.deref" {
		t.Errorf("Op = %q, want %q", target.Op, "arena.deref")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		InvalidArgument: "invalid argument",
		IndexOutOfRange: "index out of range",
		Underflow:       "underflow",
		InvalidHandle:   "invalid handle",
		Unsupported:     "unsupported",
		DepthExceeded:   "depth exceeded",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
