package adapters

import (
	"os"

	"github.com/google/wire"
	"github.com/trebuchet-org/hdeploy/internal/adapters/abi"
	"github.com/trebuchet-org/hdeploy/internal/adapters/artifact"
	"github.com/trebuchet-org/hdeploy/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/hdeploy/internal/adapters/config"
	"github.com/trebuchet-org/hdeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/hdeploy/internal/adapters/wallet"
	"github.com/trebuchet-org/hdeploy/internal/config"
	domainconfig "github.com/trebuchet-org/hdeploy/internal/domain/config"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// ProvideConfirmer prompts on stderr so stdout only carries results
func ProvideConfirmer(cfg *domainconfig.RuntimeConfig) *interactive.Confirmer {
	return interactive.NewConfirmer(cfg, os.Stderr, nil)
}

// ArtifactSet provides artifact loading and constructor encoding
var ArtifactSet = wire.NewSet(
	artifact.NewLoader,
	wire.Bind(new(usecase.ArtifactLoader), new(*artifact.Loader)),

	abi.NewArgumentEncoder,
	wire.Bind(new(usecase.ConstructorEncoder), new(*abi.ArgumentEncoder)),
)

// WalletSet provides key derivation
var WalletSet = wire.NewSet(
	wallet.NewHDWallet,
	wire.Bind(new(usecase.WalletProvider), new(*wallet.HDWallet)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	ProvideConfirmer,
	wire.Bind(new(usecase.DeploymentConfirmer), new(*interactive.Confirmer)),

	interactive.NewNetworkSelector,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.NewNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewConnector,
	wire.Bind(new(usecase.NetworkConnector), new(*blockchain.Connector)),

	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactSet,
	WalletSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
