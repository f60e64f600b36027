package registry

import (
	"errors"
	"testing"

	"github.com/ghaddam/armnn/internal/domain"
)

type stubHandler struct {
	id int
}

func (s *stubHandler) Invoke(_ domain.Packet) error { return nil }

func TestKeyComparisons(t *testing.T) {
	a := Key{PacketID: 1, Version: 5}
	b := Key{PacketID: 1, Version: 10}
	c := Key{PacketID: 2, Version: 0}

	if !a.Less(b) {
		t.Errorf("expected (1,5) < (1,10)")
	}
	if !b.Less(c) {
		t.Errorf("expected (1,10) < (2,0)")
	}
	if a.Compare(a) != 0 {
		t.Errorf("expected equal key to compare 0")
	}
	if !(c.Compare(a) > 0) {
		t.Errorf("expected (2,0) > (1,5)")
	}
}

func TestRegisterIsIdempotentOnDuplicateKey(t *testing.T) {
	r := New()
	first := &stubHandler{id: 1}
	second := &stubHandler{id: 2}

	r.Register(first, 7, domain.Version{Major: 1})
	r.Register(second, 7, domain.Version{Major: 1})

	got, err := r.Get(7, domain.Version{Major: 1})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.(*stubHandler).id != 2 {
		t.Fatalf("expected replaced handler to win, got id=%d", got.(*stubHandler).id)
	}
}

func TestGetUnknownKeyFails(t *testing.T) {
	r := New()
	if _, err := r.Get(1, domain.Version{}); !errors.Is(err, ErrHandlerNotFound) {
		t.Fatalf("expected ErrHandlerNotFound, got %v", err)
	}
}

func TestKeysAreSorted(t *testing.T) {
	r := New()
	r.Register(&stubHandler{}, 5, domain.Version{Patch: 1})
	r.Register(&stubHandler{}, 1, domain.Version{Patch: 9})
	r.Register(&stubHandler{}, 5, domain.Version{Patch: 0})
	r.Register(&stubHandler{}, 1, domain.Version{Patch: 2})

	keys := r.Keys()
	for i := 1; i < len(keys); i++ {
		if !keys[i-1].Less(keys[i]) {
			t.Fatalf("expected strictly increasing key order, got %v", keys)
		}
	}
}
