package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"soulledger/internal/app/authority"
	"soulledger/internal/app/ports"
	domain "soulledger/internal/domain/catalog"
)

var (
	ErrInvalidRequest = errors.New("invalid catalog request")
	ErrEventExists    = errors.New("event already exists")
	ErrQuestExists    = errors.New("quest already exists")
)

type CreateEventRequest struct {
	Caller string
	Name   string
}

type SetEventActiveRequest struct {
	Caller string
	Name   string
	Active bool
}

type CreateQuestRequest struct {
	Caller   string
	Event    string
	Name     string
	XPReward uint64
}

// UseCase manages events and their quests. The principal that creates an
// event becomes its authority and is the only one allowed to change it.
type UseCase struct {
	Catalog  ports.CatalogRepository
	Registry authority.Registry
	Now      func() time.Time
}

func (u UseCase) CreateEvent(ctx context.Context, req CreateEventRequest) (domain.Event, error) {
	caller := strings.TrimSpace(req.Caller)
	name, err := domain.NormalizeName(req.Name)
	if err != nil || caller == "" {
		return domain.Event{}, ErrInvalidRequest
	}
	event := domain.Event{
		Name:      name,
		Authority: caller,
		Active:    true,
		CreatedAt: u.now(),
	}
	if err := u.Catalog.CreateEvent(ctx, event); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return domain.Event{}, ErrEventExists
		}
		return domain.Event{}, err
	}
	return event, nil
}

func (u UseCase) SetEventActive(ctx context.Context, req SetEventActiveRequest) (domain.Event, error) {
	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		return domain.Event{}, ErrInvalidRequest
	}
	event, err := u.Catalog.GetEvent(ctx, name)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %s: %w", name, err)
	}
	if err := u.Registry.AuthorizeEventAuthority(strings.TrimSpace(req.Caller), event); err != nil {
		return domain.Event{}, err
	}
	if err := u.Catalog.SetEventActive(ctx, name, req.Active); err != nil {
		return domain.Event{}, err
	}
	event.Active = req.Active
	return event, nil
}

func (u UseCase) CreateQuest(ctx context.Context, req CreateQuestRequest) (domain.Quest, error) {
	eventName, err := domain.NormalizeName(req.Event)
	if err != nil {
		return domain.Quest{}, ErrInvalidRequest
	}
	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		return domain.Quest{}, ErrInvalidRequest
	}
	event, err := u.Catalog.GetEvent(ctx, eventName)
	if err != nil {
		return domain.Quest{}, fmt.Errorf("event %s: %w", eventName, err)
	}
	if err := u.Registry.AuthorizeEventAuthority(strings.TrimSpace(req.Caller), event); err != nil {
		return domain.Quest{}, err
	}
	quest := domain.Quest{
		Event:     eventName,
		Name:      name,
		XPReward:  req.XPReward,
		CreatedAt: u.now(),
	}
	if err := u.Catalog.CreateQuest(ctx, quest); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return domain.Quest{}, ErrQuestExists
		}
		return domain.Quest{}, err
	}
	return quest, nil
}

func (u UseCase) GetQuest(ctx context.Context, event, name string) (domain.Quest, error) {
	event, err := domain.NormalizeName(event)
	if err != nil {
		return domain.Quest{}, ErrInvalidRequest
	}
	name, err = domain.NormalizeName(name)
	if err != nil {
		return domain.Quest{}, ErrInvalidRequest
	}
	q, err := u.Catalog.GetQuest(ctx, event, name)
	if err != nil {
		return domain.Quest{}, fmt.Errorf("quest %s/%s: %w", event, name, err)
	}
	return q, nil
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now().UTC()
}
