package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// DeploymentResult describes a confirmed contract creation
type DeploymentResult struct {
	ContractName    string         `json:"contractName,omitempty"`
	Address         common.Address `json:"address"`
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     uint64         `json:"blockNumber"`
	GasUsed         uint64         `json:"gasUsed"`
	ChainID         uint64         `json:"chainId"`
	Deployer        common.Address `json:"deployer"`
	Network         string         `json:"network"`
}

// NetworkInfo is a resolved network identifier
type NetworkInfo struct {
	Name string `json:"name"`
	// RPCURL may carry an API key and is kept out of encoded output
	RPCURL  string `json:"-"`
	ChainID uint64 `json:"chainId,omitempty"`

	ExplorerURL string `json:"explorerUrl,omitempty"`

	// Source records where the RPC URL came from: "url", "foundry.toml" or "env"
	Source string `json:"source"`
}
