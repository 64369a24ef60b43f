package authority

import (
	"errors"
	"testing"

	"soulledger/internal/domain/catalog"
)

func TestRegistry_Backend(t *testing.T) {
	r := NewRegistry([]string{" svc-xp ", "", "svc-rotated"})
	if err := r.AuthorizeBackend("svc-xp"); err != nil {
		t.Fatalf("expected svc-xp allowed, got %v", err)
	}
	if err := r.AuthorizeBackend("svc-rotated"); err != nil {
		t.Fatalf("expected svc-rotated allowed, got %v", err)
	}
	for _, caller := range []string{"", "organizer", "svc-xp2"} {
		if err := r.AuthorizeBackend(caller); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("caller=%q: expected ErrUnauthorized, got %v", caller, err)
		}
	}
}

func TestRegistry_EventAuthority(t *testing.T) {
	r := NewRegistry(nil)
	event := catalog.Event{Name: "fest", Authority: "scanner-1", Active: true}
	if err := r.AuthorizeEventAuthority("scanner-1", event); err != nil {
		t.Fatalf("expected authority allowed, got %v", err)
	}
	if err := r.AuthorizeEventAuthority("scanner-2", event); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := r.AuthorizeEventAuthority("", catalog.Event{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("empty caller must be rejected, got %v", err)
	}
}

func TestRegistry_Holder(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.AuthorizeHolder("alice", "alice"); err != nil {
		t.Fatalf("expected holder allowed, got %v", err)
	}
	if err := r.AuthorizeHolder("bob", "alice"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
