package cli

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hdeploy/internal/app"
	"github.com/trebuchet-org/hdeploy/internal/cli/render"
	"github.com/trebuchet-org/hdeploy/internal/config"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var constructorArgs []string

	cmd := &cobra.Command{
		Use:   "deploy <artifact>",
		Short: "Deploy a compiled contract",
		Long: `Deploy a compiled contract artifact in a single contract-creation transaction.

The artifact may be a Foundry artifact (out/Counter.sol/Counter.json), a
Truffle/Hardhat artifact, a {"interface", "bytecode"} compiler output, or a
solc .abi/.bin pair. Constructor arguments are given in order with --arg.

Each run sends a new transaction: running twice deploys twice.`,
		Example: `  HDEPLOY_MNEMONIC="..." hdeploy deploy out/Inbox.sol/Inbox.json -n sepolia --arg "Hi there!"
  hdeploy deploy build/Token.bin --mnemonic-file ~/.secrets/deployer -n http://localhost:8545 --arg 0xabc... --arg 1000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format, err := outputFormat(app.Viper)
			if err != nil {
				return err
			}

			if err := selectNetwork(cmd, app); err != nil {
				return err
			}

			creds, err := config.LoadCredentials(app.Viper, app.Config)
			if err != nil {
				return domain.NewConfigurationError(err)
			}

			params := usecase.DeployContractParams{
				Credentials:  creds,
				ArtifactPath: args[0],
			}
			if cmd.Flags().Changed("arg") {
				params.ConstructorArgs = constructorArgs
			}

			result, err := app.DeployContract.Run(cmd.Context(), params)
			if errors.Is(err, usecase.ErrDeploymentDeclined) {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning("Deployment cancelled, nothing was sent"))
				return nil
			}
			if err != nil {
				return err
			}

			return render.NewDeploymentRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().StringArrayVar(&constructorArgs, "arg", nil, "Constructor argument, repeat in ABI order")
	cmd.Flags().Uint64("chain-id", 0, "Expected chain ID; the deployment aborts if the node reports another")
	cmd.Flags().Uint64("gas-limit", 0, "Gas limit for the creation transaction (default: estimate)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// selectNetwork prompts for a configured network when none was given on a terminal.
// Otherwise the missing network is left for the deployment to reject.
func selectNetwork(cmd *cobra.Command, a *app.App) error {
	if a.Config.Network != "" || !isInteractive(a) {
		return nil
	}

	result, err := a.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
	if err != nil {
		return err
	}
	names := lo.FilterMap(result.Networks, func(n usecase.NetworkStatus, _ int) (string, bool) {
		return n.Name, n.Error == nil
	})
	if len(names) == 0 {
		return nil
	}

	network, err := a.NetworkSelector.SelectNetwork(cmd.Context(), names)
	if err != nil {
		return err
	}
	a.Config.Network = network
	return nil
}
