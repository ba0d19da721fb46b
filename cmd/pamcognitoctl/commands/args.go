package commands

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/pamcognito/internal/cli/output"
	"github.com/marmos91/pamcognito/pkg/config"
)

var argsCmd = &cobra.Command{
	Use:   "args [module-args...]",
	Short: "Parse and validate module arguments",
	Long: `Parse module arguments the way the PAM module does, reading the
configuration file named by config=<path> first, and print the resulting
configuration with secrets masked.

Examples:
  pamcognitoctl args region=us-east-1 pool-id=us-east-1_Ab client-id=c1 timeout=5
  pamcognitoctl args config=/etc/pam_cognito.yaml -o yaml`,
	RunE: runArgs,
}

// optionTable renders config fields as an OPTION / VALUE table.
type optionTable []config.Field

func (t optionTable) Headers() []string { return []string{"Option", "Value"} }

func (t optionTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, f := range t {
		rows = append(rows, []string{f.Option, f.Value})
	}
	return rows
}

func runArgs(cmd *cobra.Command, args []string) error {
	p, err := printer(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	if outputFormat == string(output.FormatTable) {
		return p.Print(optionTable(cfg.Fields()))
	}
	return p.Print(cfg.Redacted())
}
