package payment

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/spf13/cobra"
)

var createPackage string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a pending payment",
	Long: `Create a pending payment for a package.

The payment amount is taken from the package's price. Confirm the
payment once the provider settles it to apply the package.

Examples:
  signcastctl payment create --package <package-id>
  signcastctl payment create --package <package-id> --tenant <tenant-id>`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createPackage, "package", "", "Package ID to pay for (required)")
	_ = createCmd.MarkFlagRequired("package")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	p, err := client.CreatePayment(cmdutil.GetTenantID(), createPackage)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, p,
		fmt.Sprintf("Payment %s created (%s, status: %s)", p.ID, formatAmount(p.AmountCents, p.Currency), p.Status))
}
