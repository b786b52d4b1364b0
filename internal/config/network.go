package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
)

// Network sources recorded on domain.NetworkInfo
const (
	SourceURL     = "url"
	SourceFoundry = "foundry.toml"
	SourceEnv     = "env"
)

var urlSchemes = []string{"http://", "https://", "ws://", "wss://"}

// NetworkResolver resolves network identifiers to RPC endpoints.
// It never contacts the network: chain IDs are only known when configured.
type NetworkResolver struct {
	projectRoot   string
	foundryConfig *config.FoundryConfig
	expectChainID uint64
	lookupEnv     func(string) (string, bool)
	environ       func() []string
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return &NetworkResolver{
		projectRoot:   cfg.ProjectRoot,
		foundryConfig: cfg.FoundryConfig,
		expectChainID: cfg.ChainID,
		lookupEnv:     os.LookupEnv,
		environ:       os.Environ,
	}
}

// Resolve turns a URL, IPC path or symbolic name into a NetworkInfo.
// Names are looked up in foundry.toml [rpc_endpoints], then in <NAME>_RPC_URL.
func (r *NetworkResolver) Resolve(identifier string) (*domain.NetworkInfo, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrEmptyNetwork
	}

	if IsEndpoint(identifier) {
		return &domain.NetworkInfo{
			Name:        domain.RedactURL(identifier),
			RPCURL:      identifier,
			ChainID:     r.expectChainID,
			ExplorerURL: explorerURL(nil, "", r.expectChainID),
			Source:      SourceURL,
		}, nil
	}

	if r.foundryConfig.HasEndpoint(identifier) {
		rpcURL := r.foundryConfig.RpcEndpoints[identifier]
		if rpcURL == "" {
			return nil, r.emptyEndpointError(identifier)
		}
		if strings.Contains(rpcURL, "${") {
			return nil, fmt.Errorf("network '%s' has an unexpanded variable in its RPC URL", identifier)
		}
		return &domain.NetworkInfo{
			Name:        identifier,
			RPCURL:      rpcURL,
			ChainID:     r.expectChainID,
			ExplorerURL: explorerURL(r.foundryConfig, identifier, r.expectChainID),
			Source:      SourceFoundry,
		}, nil
	}

	envVar := GenerateEnvVarName(identifier)
	if rpcURL, ok := r.lookupEnv(envVar); ok && rpcURL != "" {
		return &domain.NetworkInfo{
			Name:        identifier,
			RPCURL:      rpcURL,
			ChainID:     r.expectChainID,
			ExplorerURL: explorerURL(r.foundryConfig, identifier, r.expectChainID),
			Source:      SourceEnv,
		}, nil
	}

	return nil, fmt.Errorf("unknown network '%s': not a URL, not in foundry.toml [rpc_endpoints] and %s is not set", identifier, envVar)
}

// emptyEndpointError names the variable an empty [rpc_endpoints] entry refers to
func (r *NetworkResolver) emptyEndpointError(name string) error {
	raw, err := LoadRawRPCEndpoints(r.projectRoot)
	if err == nil {
		if envVar, ok := DetectEnvVar(raw[name]); ok {
			return fmt.Errorf("network '%s' uses ${%s} in foundry.toml but it is not set", name, envVar)
		}
	}
	return fmt.Errorf("network '%s' has an empty RPC URL in foundry.toml", name)
}

// GetNetworks returns all symbolic network names, sorted
func (r *NetworkResolver) GetNetworks() []string {
	var names []string
	if r.foundryConfig != nil {
		names = lo.Keys(r.foundryConfig.RpcEndpoints)
	}

	for _, kv := range r.environ() {
		key, value, _ := strings.Cut(kv, "=")
		if value == "" {
			continue
		}
		if name, ok := NetworkNameFromEnvVar(key); ok {
			names = append(names, name)
		}
	}

	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// IsEndpoint reports whether identifier is a URL or IPC path rather than a name
func IsEndpoint(identifier string) bool {
	lower := strings.ToLower(identifier)
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return strings.HasSuffix(identifier, ".ipc") || strings.HasPrefix(identifier, "/") || strings.HasPrefix(identifier, `\\.\pipe\`)
}

// explorerURL returns the explorer URL for a network
func explorerURL(foundryConfig *config.FoundryConfig, networkName string, chainID uint64) string {
	if foundryConfig != nil {
		if etherscan, exists := foundryConfig.Etherscan[networkName]; exists && etherscan.URL != "" {
			return etherscan.URL
		}
	}

	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	case 324:
		return "https://explorer.zksync.io"
	case 42220:
		return "https://celoscan.io"
	default:
		return ""
	}
}
