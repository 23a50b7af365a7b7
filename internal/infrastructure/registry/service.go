package registry

import (
	"context"
	"sync"
)

// MaxRoyaltyBps is the inclusive cap on per-collection royalty rates.
// Together with the marketplace fee cap it guarantees fee + royalty never
// reaches the full settlement price.
const MaxRoyaltyBps = 1000

type collection struct {
	manager         string
	banned          bool
	royaltyReceiver string
	royaltyBps      uint64
}

// Service is an in-process collection registry implementing ports.Registry.
// It stands in for the independently owned registry collaborator: the owner
// admits and bans collections, each collection's manager configures its
// royalty.
type Service struct {
	mtx         sync.RWMutex
	owner       string
	collections map[string]*collection
}

// NewService returns an empty registry owned by the given account.
func NewService(owner string) *Service {
	return &Service{
		owner:       owner,
		collections: map[string]*collection{},
	}
}

// AddCollection admits a collection and assigns its manager.
func (s *Service) AddCollection(caller, name, manager string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if caller != s.owner {
		return ErrNotOwner
	}
	if _, ok := s.collections[name]; ok {
		return ErrAlreadyAdded
	}
	s.collections[name] = &collection{manager: manager}
	return nil
}

// Ban marks an admitted collection as not tradable.
func (s *Service) Ban(caller, name string) error {
	return s.setBanned(caller, name, true)
}

// Unban restores tradability of a banned collection.
func (s *Service) Unban(caller, name string) error {
	return s.setBanned(caller, name, false)
}

// SetRoyalty configures the royalty receiver and rate of a collection. Only
// the collection manager may call it.
func (s *Service) SetRoyalty(caller, name, receiver string, bps uint64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return ErrNotAdded
	}
	if caller != c.manager {
		return ErrNotManager
	}
	if bps > MaxRoyaltyBps {
		return ErrRoyaltyTooHigh
	}
	c.royaltyReceiver = receiver
	c.royaltyBps = bps
	return nil
}

// IsTradable implements ports.Registry.
func (s *Service) IsTradable(_ context.Context, name string) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return false, nil
	}
	return !c.banned, nil
}

// RoyaltyInfo implements ports.Registry.
func (s *Service) RoyaltyInfo(_ context.Context, name string) (string, uint64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return "", 0, nil
	}
	return c.royaltyReceiver, c.royaltyBps, nil
}

func (s *Service) setBanned(caller, name string, banned bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if caller != s.owner {
		return ErrNotOwner
	}
	c, ok := s.collections[name]
	if !ok {
		return ErrNotAdded
	}
	c.banned = banned
	return nil
}
