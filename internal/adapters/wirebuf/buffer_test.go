package wirebuf

import (
	"errors"
	"testing"
)

func TestReserveCommitRead(t *testing.T) {
	b := New(16)
	region, h, err := b.Reserve(4)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	copy(region, []byte{1, 2, 3, 4})
	if err := b.Commit(h, 4); err != nil {
		t.Fatalf("commit: %v", err)
	}

	data, n := b.Read()
	if n != 4 {
		t.Fatalf("expected 4 bytes, got %d", n)
	}
	if data[0] != 1 || data[3] != 4 {
		t.Fatalf("unexpected data %v", data)
	}
	if b.Len() != 0 {
		t.Fatalf("expected buffer drained after read, got len=%d", b.Len())
	}
}

func TestReserveExhaustedFailsAndReleasesCleanly(t *testing.T) {
	b := New(4)
	_, h, err := b.Reserve(4)
	if err != nil {
		t.Fatalf("first reserve should fit: %v", err)
	}
	if err := b.Release(h); err != nil {
		t.Fatalf("release: %v", err)
	}

	_, _, err = b.Reserve(8)
	if !errors.Is(err, ErrBufferExhausted) {
		t.Fatalf("expected ErrBufferExhausted, got %v", err)
	}
}

func TestReleaseDoesNotAdvanceWriteOffset(t *testing.T) {
	b := New(8)
	_, h, err := b.Reserve(8)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := b.Release(h); err != nil {
		t.Fatalf("release: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected len 0 after release, got %d", b.Len())
	}
	if _, _, err := b.Reserve(8); err != nil {
		t.Fatalf("expected full capacity available again after release: %v", err)
	}
}

func TestCommitOrReleaseRequiresMatchingHandle(t *testing.T) {
	b := New(8)
	_, h, err := b.Reserve(4)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := b.Commit(h, 4); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := b.Commit(h, 4); err == nil {
		t.Fatalf("expected error committing an already-resolved handle")
	}
}
