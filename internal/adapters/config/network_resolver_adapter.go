package config

import (
	"context"

	"github.com/trebuchet-org/hdeploy/internal/config"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a network identifier without contacting it
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, identifier string) (*domain.NetworkInfo, error) {
	return a.resolver.Resolve(identifier)
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
