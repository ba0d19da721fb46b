// Package commands implements the pamcognitoctl commands.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/pamcognito/internal/cli/output"
	"github.com/marmos91/pamcognito/internal/logger"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	outputFormat string
	noColor      bool
	logLevel     string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pamcognitoctl",
	Short: "pam_cognito operator tool",
	Long: `pamcognitoctl exercises the pam_cognito module from a terminal.

It runs the same authentication bridge as the PAM module with a terminal
conversation, checks module arguments and configuration files, and prints
the configuration file schema.

Module arguments are passed exactly as on the PAM stack line:

  pamcognitoctl verify region=us-east-1 pool-id=us-east-1_Ab client-id=c1 challenge

Use "pamcognitoctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{Output: "stderr", Level: logLevel})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level (DEBUG|INFO|WARN|ERROR)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(argsCmd)
	rootCmd.AddCommand(schemaCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// printer returns a Printer for the command's stdout honoring --output
// and --no-color.
func printer(cmd *cobra.Command) (*output.Printer, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(cmd.OutOrStdout(), format, !noColor && isTerminal(cmd.OutOrStdout())), nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return logger.IsTerminal(f.Fd())
}
