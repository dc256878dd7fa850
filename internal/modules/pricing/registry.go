package pricing

import (
	"context"
	"fmt"
)

// Capability is the pricing behaviour bound to one service type.
type Capability struct {
	Resolver PriceResolver
	Composer QuoteComposer
}

// Registry maps service types to their pricing capabilities. It replaces
// string-keyed table dispatch: the mapping is built once at startup and
// lookups after that are read-only.
type Registry struct {
	caps map[string]Capability
}

func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]Capability)}
}

func (r *Registry) Register(serviceType string, c Capability) error {
	if serviceType == "" {
		return fmt.Errorf("%w: empty service type", ErrUnknownServiceType)
	}
	if _, exists := r.caps[serviceType]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, serviceType)
	}
	r.caps[serviceType] = c
	return nil
}

func (r *Registry) Lookup(serviceType string) (Capability, bool) {
	c, ok := r.caps[serviceType]
	return c, ok
}

// BuildRegistry registers the default resolver/composer pair for every
// active service in the catalog.
func BuildRegistry(ctx context.Context, services ServiceLister, resolver *Resolver, composer *Composer) (*Registry, error) {
	list, err := services.ListActiveServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}

	reg := NewRegistry()
	for _, svc := range list {
		if err := reg.Register(svc.Code, Capability{Resolver: resolver, Composer: composer}); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
