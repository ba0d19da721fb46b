package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/pamcognito/internal/cli/prompt"
	"github.com/marmos91/pamcognito/pkg/auth"
	"github.com/marmos91/pamcognito/pkg/auth/cognito"
	"github.com/marmos91/pamcognito/pkg/conversation"
)

var (
	verifyUser    string
	verifyService string
	verifySilent  bool
)

// newVerifier builds the verifier used by verify. Unlike the module, the
// CLI resolves AWS settings from the operator's environment.
var newVerifier = func() auth.Verifier {
	return cognito.New(cognito.WithEnvironment())
}

// newTransaction builds the terminal conversation used by verify.
var newTransaction = func(cmd *cobra.Command) conversation.Transaction {
	return &prompt.Transaction{
		Username:    verifyUser,
		ServiceName: verifyService,
		Out:         cmd.ErrOrStderr(),
	}
}

var verifyCmd = &cobra.Command{
	Use:   "verify [module-args...]",
	Short: "Run one authentication attempt from the terminal",
	Long: `Run one authentication attempt through the same bridge as the PAM module.

The password and any challenge code are read from the terminal with masked
input. The resulting PAM status is printed; the command fails unless it is
PAM_SUCCESS.

AWS credentials, region overrides and proxies are taken from the operator's
environment and shared config files in addition to the module arguments.

Examples:
  # Admin flow with instance role credentials
  pamcognitoctl verify region=us-east-1 pool-id=us-east-1_Ab client-id=c1 --user alice

  # Public flow with SMS or TOTP challenge support
  pamcognitoctl verify config=/etc/pam_cognito.yaml auth-flow=user-password challenge`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyUser, "user", "u", "", "Username (prompted when empty)")
	verifyCmd.Flags().StringVar(&verifyService, "service", "", "PAM service name reported in logs")
	verifyCmd.Flags().BoolVar(&verifySilent, "silent", false, "Suppress informational messages, as PAM_SILENT")
}

func runVerify(cmd *cobra.Command, args []string) error {
	p, err := printer(cmd)
	if err != nil {
		return err
	}

	var flags auth.Flags
	if verifySilent {
		flags |= auth.FlagSilent
	}

	status := auth.NewBridge(newVerifier()).Authenticate(cmd.Context(), newTransaction(cmd), flags, args)
	p.Status(status == auth.StatusSuccess, status.String())
	if status != auth.StatusSuccess {
		return fmt.Errorf("authentication failed: %s", status)
	}
	return nil
}
