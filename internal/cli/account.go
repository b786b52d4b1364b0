package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hdeploy/internal/cli/render"
	"github.com/trebuchet-org/hdeploy/internal/config"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// NewAccountCmd creates the account command
func NewAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the deployer address derived from the mnemonic",
		Long: `Derive the deployer address from the mnemonic and derivation path without
contacting any network. Fund this address before deploying.`,
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

			creds, err := config.LoadCredentials(app.Viper, app.Config)
			if err != nil {
				return domain.NewConfigurationError(err)
			}

			result, err := app.ShowAccount.Run(cmd.Context(), usecase.ShowAccountParams{Credentials: creds})
			if err != nil {
				return err
			}

			return render.NewAccountRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	return cmd
}
