package application

import (
	"context"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
	"github.com/nftmarket/nftmarket-daemon/pkg/circuitbreaker"
)

type royaltyInfo struct {
	receiver string
	bps      uint64
}

// RegistryGateway holds the single swappable reference to the external
// collection registry. A swap takes effect immediately for every subsequent
// eligibility check, including bids on auctions created under the previous
// registry, while open positions are unaffected. Calls go through a circuit
// breaker like any other external collaborator.
type RegistryGateway struct {
	mtx      sync.RWMutex
	registry ports.Registry
	cb       *gobreaker.CircuitBreaker
}

// NewRegistryGateway returns a gateway pointing at the given registry.
func NewRegistryGateway(registry ports.Registry) *RegistryGateway {
	return &RegistryGateway{
		registry: registry,
		cb:       circuitbreaker.NewCircuitBreaker("registry"),
	}
}

// Swap repoints the gateway at another registry.
func (g *RegistryGateway) Swap(registry ports.Registry) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.registry = registry
}

// Registry returns the registry currently pointed at.
func (g *RegistryGateway) Registry() ports.Registry {
	g.mtx.RLock()
	defer g.mtx.RUnlock()
	return g.registry
}

// IsTradable implements ports.Registry.
func (g *RegistryGateway) IsTradable(ctx context.Context, collection string) (bool, error) {
	registry := g.Registry()
	res, err := g.cb.Execute(func() (interface{}, error) {
		return registry.IsTradable(ctx, collection)
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// RoyaltyInfo implements ports.Registry.
func (g *RegistryGateway) RoyaltyInfo(ctx context.Context, collection string) (string, uint64, error) {
	registry := g.Registry()
	res, err := g.cb.Execute(func() (interface{}, error) {
		receiver, bps, err := registry.RoyaltyInfo(ctx, collection)
		if err != nil {
			return nil, err
		}
		return royaltyInfo{receiver, bps}, nil
	})
	if err != nil {
		return "", 0, err
	}
	info := res.(royaltyInfo)
	return info.receiver, info.bps, nil
}
