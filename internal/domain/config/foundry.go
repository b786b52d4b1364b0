package config

// FoundryConfig is the subset of foundry.toml used for network resolution
type FoundryConfig struct {
	RpcEndpoints map[string]string          `toml:"rpc_endpoints"`
	Etherscan    map[string]EtherscanConfig `toml:"etherscan,omitempty"`
}

// EtherscanConfig represents Etherscan configuration for a network
// This matches Foundry's expected structure
type EtherscanConfig struct {
	Key string `toml:"key,omitempty"` // API key for verification
	URL string `toml:"url,omitempty"` // API URL (for custom explorers)
}

// HasEndpoint reports whether name is listed under [rpc_endpoints]
func (f *FoundryConfig) HasEndpoint(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.RpcEndpoints[name]
	return ok
}
