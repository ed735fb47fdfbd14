package payment

import (
	"fmt"
	"os"

	"github.com/signcast/signcast/cmd/signcastctl/cmdutil"
	"github.com/signcast/signcast/internal/cli/timeutil"
	"github.com/signcast/signcast/pkg/apiclient"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	Long: `List the tenant's payments, newest first.

Examples:
  signcastctl payment list
  signcastctl payment list --tenant <tenant-id>`,
	RunE: runList,
}

// PaymentList is a list of payments for table rendering.
type PaymentList []apiclient.Payment

// Headers implements TableRenderer.
func (pl PaymentList) Headers() []string {
	return []string{"ID", "PACKAGE", "AMOUNT", "STATUS", "PAID AT"}
}

// Rows implements TableRenderer.
func (pl PaymentList) Rows() [][]string {
	rows := make([][]string, 0, len(pl))
	for _, p := range pl {
		paidAt := "-"
		if p.PaidAt != nil {
			paidAt = timeutil.FormatTimestamp(*p.PaidAt)
		}
		rows = append(rows, []string{
			p.ID,
			p.PackageID,
			formatAmount(p.AmountCents, p.Currency),
			p.Status,
			paidAt,
		})
	}
	return rows
}

func formatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	payments, err := client.ListPayments(cmdutil.GetTenantID())
	if err != nil {
		return fmt.Errorf("failed to list payments: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, payments, len(payments) == 0, "No payments found.", PaymentList(payments))
}
