package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/hdeploy/internal/adapters/progress"
	"github.com/trebuchet-org/hdeploy/internal/app"
	"github.com/trebuchet-org/hdeploy/internal/cli/render"
	"github.com/trebuchet-org/hdeploy/internal/config"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hdeploy",
		Short: "Deploy a compiled contract with a key derived from a mnemonic",
		Long: `hdeploy derives a deployer key from a BIP-39 mnemonic, connects to an EVM
network and sends exactly one contract-creation transaction for a compiled
artifact. The mnemonic is read from HDEPLOY_MNEMONIC or --mnemonic-file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot := config.FindProjectRoot()
			v := config.SetupViper(projectRoot, cmd)

			sink, err := newProgressSink(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Nobody can answer a prompt on piped stdin
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				appInstance.Config.NonInteractive = true
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network: RPC URL, IPC path or name from foundry.toml / <NAME>_RPC_URL")
	rootCmd.PersistentFlags().String("mnemonic-file", "", "Read the mnemonic from this file instead of HDEPLOY_MNEMONIC")
	rootCmd.PersistentFlags().String("derivation-path", "", "HD derivation path (default m/44'/60'/0'/0/0)")
	rootCmd.PersistentFlags().String("passphrase-env", "", "Environment variable holding the BIP-39 passphrase")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Give up after this long (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	accountCmd := NewAccountCmd()
	accountCmd.GroupID = "main"
	rootCmd.AddCommand(accountCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink picks the progress display: none for structured output, a spinner
// on a terminal, plain lines otherwise
func newProgressSink(v *viper.Viper, out io.Writer) (usecase.ProgressSink, error) {
	format, err := outputFormat(v)
	if err != nil {
		return nil, err
	}
	if format != render.FormatText {
		return progress.NewNopSink(), nil
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) && !v.GetBool("non_interactive") {
		return progress.NewSpinnerProgressReporter(out), nil
	}
	return progress.NewPlainProgress(out), nil
}

// outputFormat resolves --output, with --json as a shorthand
func outputFormat(v *viper.Viper) (render.Format, error) {
	if v.GetBool("json") {
		return render.FormatJSON, nil
	}
	return render.ParseFormat(v.GetString("output"))
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// isInteractive reports whether prompts can be shown
func isInteractive(a *app.App) bool {
	return !a.Config.NonInteractive
}
