package arena

import (
	"errors"
	"testing"

	"treevec.dev/core/collerr"
)

func TestNewRejectsOutOfRangeChunkBits(t *testing.T) {
	if _, err := New[int, int](1); !errors.Is(err, collerr.ErrInvalidArgument) {
		t.Fatalf("New(1) error = %v, want InvalidArgument", err)
	}
	if _, err := New[int, int](9); !errors.Is(err, collerr.ErrInvalidArgument) {
		t.Fatalf("New(9) error = %v, want InvalidArgument", err)
	}
}

func TestAllocateNeverHandsOutNilHandle(t *testing.T) {
	a, err := New[int, int](2) // chunk size 4
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		h, err := a.Allocate()
		if err != nil {
			t.Fatalf("Allocate() #%d: %v", i, err)
		}
		if h == NilHandle {
			t.Fatalf("Allocate() #%d handed out the nil handle", i)
		}
	}
	if a.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", a.Len())
	}
}

func TestFreeAndReuseLIFO(t *testing.T) {
	a, err := New[string, int](2)
	if err != nil {
		t.Fatal(err)
	}
	h1, _ := a.Allocate()
	h2, _ := a.Allocate()
	h3, _ := a.Allocate()

	if err := a.Free(h2); err != nil {
		t.Fatalf("Free(h2): %v", err)
	}
	if err := a.Free(h3); err != nil {
		t.Fatalf("Free(h3): %v", err)
	}

	// Free list is LIFO: the next two allocations reuse h3 then h2.
	r1, _ := a.Allocate()
	r2, _ := a.Allocate()
	if r1 != h3 {
		t.Fatalf("first reuse = %d, want %d (h3)", r1, h3)
	}
	if r2 != h2 {
		t.Fatalf("second reuse = %d, want %d (h2)", r2, h2)
	}
	if a.Len() != 3 { // h1, r1, r2 live
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	_ = h1
}

func TestFreeInvalidHandle(t *testing.T) {
	a, _ := New[int, int](2)
	if err := a.Free(NilHandle); !errors.Is(err, collerr.ErrInvalidHandle) {
		t.Fatalf("Free(NilHandle) error = %v, want InvalidHandle", err)
	}
	h, _ := a.Allocate()
	if err := a.Free(h); err != nil {
		t.Fatal(err)
	}
	if err := a.Free(h); !errors.Is(err, collerr.ErrInvalidHandle) {
		t.Fatalf("double Free() error = %v, want InvalidHandle", err)
	}
}

func TestDerefRoundTrip(t *testing.T) {
	a, _ := New[string, int](3)
	h, _ := a.Allocate()
	rec, err := a.Deref(h)
	if err != nil {
		t.Fatal(err)
	}
	rec.Value = "hello"
	rec.Tag = 7

	rec2, _ := a.Deref(h)
	if rec2.Value != "hello" || rec2.Tag != 7 {
		t.Fatalf("Deref round trip = %+v, want {hello 7}", rec2)
	}
}

func TestDerefNilHandle(t *testing.T) {
	a, _ := New[int, int](2)
	if _, err := a.Deref(NilHandle); !errors.Is(err, collerr.ErrInvalidHandle) {
		t.Fatalf("Deref(NilHandle) error = %v, want InvalidHandle", err)
	}
}

func TestGrowsAcrossChunks(t *testing.T) {
	a, _ := New[int, int](2) // 4 slots per chunk
	handles := make(map[Handle]bool)
	for i := 0; i < 20; i++ {
		h, err := a.Allocate()
		if err != nil {
			t.Fatalf("Allocate() #%d: %v", i, err)
		}
		if handles[h] {
			t.Fatalf("Allocate() #%d returned duplicate handle %d", i, h)
		}
		handles[h] = true
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
}

func TestCompactUnsupported(t *testing.T) {
	a, _ := New[int, int](2)
	if err := a.Compact(0.5); !errors.Is(err, collerr.ErrUnsupported) {
		t.Fatalf("Compact() error = %v, want Unsupported", err)
	}
}
