package app

import (
	"github.com/spf13/viper"
	"github.com/trebuchet-org/hdeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Viper  *viper.Viper

	// Shared dependencies
	NetworkSelector *interactive.NetworkSelector

	// Use cases
	DeployContract *usecase.DeployContract
	ShowAccount    *usecase.ShowAccount
	ListNetworks   *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	v *viper.Viper,
	networkSelector *interactive.NetworkSelector,
	deployContract *usecase.DeployContract,
	showAccount *usecase.ShowAccount,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:          cfg,
		Viper:           v,
		NetworkSelector: networkSelector,
		DeployContract:  deployContract,
		ShowAccount:     showAccount,
		ListNetworks:    listNetworks,
	}, nil
}
