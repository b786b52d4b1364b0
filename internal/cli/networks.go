package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hdeploy/internal/cli/render"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List named networks",
		Long: `List networks that can be passed by name to --network: entries in the
[rpc_endpoints] section of foundry.toml and <NAME>_RPC_URL environment variables.

No RPC calls are made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format, err := outputFormat(app.Viper)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	return cmd
}
