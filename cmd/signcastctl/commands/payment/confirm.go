package payment

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/output"
	"github.com/spf13/cobra"
)

var confirmRef string

var confirmCmd = &cobra.Command{
	Use:   "confirm <payment-id>",
	Short: "Confirm a pending payment",
	Long: `Confirm a pending payment and apply its package to the tenant.

If the paid package has a smaller storage limit than the tenant's
current usage, the oldest content is evicted and the report printed.

Examples:
  signcastctl payment confirm <payment-id> --ref ch_1a2b3c`,
	Args: cobra.ExactArgs(1),
	RunE: runConfirm,
}

func init() {
	confirmCmd.Flags().StringVar(&confirmRef, "ref", "", "External payment provider reference")
}

func runConfirm(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	result, err := client.ConfirmPayment(args[0], confirmRef)
	if err != nil {
		return fmt.Errorf("failed to confirm payment: %w", err)
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintResource(os.Stdout, result, nil)
	}

	fmt.Printf("Payment %s confirmed (%s)\n", result.ID, formatAmount(result.AmountCents, result.Currency))
	cmdutil.PrintStorageCleanup(result.StorageCleanup)
	return nil
}
