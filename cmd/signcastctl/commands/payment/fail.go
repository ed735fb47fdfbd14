package payment

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/spf13/cobra"
)

var failCmd = &cobra.Command{
	Use:   "fail <payment-id>",
	Short: "Mark a pending payment as failed",
	Args:  cobra.ExactArgs(1),
	RunE:  runFail,
}

func runFail(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	p, err := client.FailPayment(args[0])
	if err != nil {
		return fmt.Errorf("failed to mark payment failed: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, p,
		fmt.Sprintf("Payment %s marked as %s", p.ID, p.Status))
}
