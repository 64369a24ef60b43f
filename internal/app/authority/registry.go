package authority

import (
	"errors"
	"strings"

	"soulledger/internal/domain/catalog"
)

var ErrUnauthorized = errors.New("unauthorized principal")

// Registry holds the configured backend principals. Event authorities are
// recorded on the events themselves.
type Registry struct {
	backend map[string]struct{}
}

func NewRegistry(backendPrincipals []string) Registry {
	set := make(map[string]struct{}, len(backendPrincipals))
	for _, p := range backendPrincipals {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		set[p] = struct{}{}
	}
	return Registry{backend: set}
}

func (r Registry) IsBackend(principal string) bool {
	_, ok := r.backend[principal]
	return ok
}

func (r Registry) AuthorizeBackend(caller string) error {
	if caller == "" || !r.IsBackend(caller) {
		return ErrUnauthorized
	}
	return nil
}

func (r Registry) AuthorizeEventAuthority(caller string, event catalog.Event) error {
	if caller == "" || caller != event.Authority {
		return ErrUnauthorized
	}
	return nil
}

func (r Registry) AuthorizeHolder(caller, owner string) error {
	if caller == "" || caller != owner {
		return ErrUnauthorized
	}
	return nil
}
